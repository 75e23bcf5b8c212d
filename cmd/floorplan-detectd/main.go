package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/ironsheep/floorplan-detectd/internal/config"
	"github.com/ironsheep/floorplan-detectd/internal/httpapi"
	"github.com/ironsheep/floorplan-detectd/internal/llmwalls"
	"github.com/ironsheep/floorplan-detectd/internal/logging"
	"github.com/ironsheep/floorplan-detectd/internal/orchestrator"
	"github.com/ironsheep/floorplan-detectd/internal/visionwalls"
)

// Version information, set by ldflags during build.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("floorplan-detectd %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("floorplan-detectd - floor plan room detection service")
			fmt.Println()
			fmt.Println("Usage: floorplan-detectd [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  PORT                   HTTP port to listen on (default 8080)")
			fmt.Println("  ALLOWED_ORIGINS        Comma-separated CORS allow-list")
			fmt.Println("  OPENAI_API_KEY         Required for svg_ai_parser/hybrid_vision/gpt5_only")
			fmt.Println("  VISION_MODEL           Default multimodal model (default gpt-4o-mini)")
			fmt.Println("  FLOORPLAN_LOG_LEVEL    debug|info|warn|error (default info)")
			return
		}
	}

	cfg := config.Load()
	log := logging.New(cfg.LogLevel)

	var llm *llmwalls.Client
	var vision *visionwalls.Client
	if cfg.OpenAIAPIKey != "" {
		llm = llmwalls.New(cfg.OpenAIAPIKey, "gpt-4o-mini")
		vision = visionwalls.New(cfg.OpenAIAPIKey, cfg.VisionModel)
	} else {
		log.Warnf("OPENAI_API_KEY not set: svg_ai_parser, vtracer_ai_parser, hybrid_vision, and gpt5_only will fail")
	}

	// No raster-to-vector conversion library is wired in: it is an
	// external collaborator specified only at its interface. vtracer_only
	// and vtracer_ai_parser fail per-request with ExternalMalformedResponse;
	// hybrid_vision runs without its vectorizer leg, so only its vision
	// leg contributes walls.
	orch := orchestrator.New(llm, vision, nil)

	srv := httpapi.New(orch, cfg, log)

	log.Infof("floorplan-detectd %s listening on :%s", Version, cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, srv.Handler()); err != nil {
		log.Errorf("server error: %v", err)
		os.Exit(1)
	}
}
