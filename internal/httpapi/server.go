package httpapi

import (
	"net/http"
	"strings"

	"github.com/ironsheep/floorplan-detectd/internal/config"
	"github.com/ironsheep/floorplan-detectd/internal/logging"
	"github.com/ironsheep/floorplan-detectd/internal/orchestrator"
)

// Version is the service version surfaced by GET /health.
const Version = "0.1.0"

const (
	standardBodyLimit = 5 << 20
	imageBodyLimit    = 10 << 20
)

// Server wires the detection orchestrator to an http.Handler.
type Server struct {
	orch    *orchestrator.Orchestrator
	log     *logging.Logger
	origins []string
}

// New returns a Server ready to be used as an http.Handler via Handler().
func New(orch *orchestrator.Orchestrator, cfg config.Config, log *logging.Logger) *Server {
	return &Server{orch: orch, log: log, origins: cfg.AllowedOrigins}
}

// Handler returns the fully wired, CORS-wrapped http.Handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/detect", s.handleDetect)
	mux.HandleFunc("/detect/enhanced", s.handleDetectEnhanced)
	mux.HandleFunc("/detect/svg", s.handleDetectSVG)
	mux.HandleFunc("/upload-image", s.handleUploadImage)
	return s.withCORS(mux)
}

// withCORS applies the CORS policy derived from ALLOWED_ORIGINS,
// falling back to allow-all with a logged warning when no origin list
// is configured — matching the original transport's documented (not
// recommended for production) fallback.
func (s *Server) withCORS(next http.Handler) http.Handler {
	if len(s.origins) == 0 {
		s.log.Warnf("no ALLOWED_ORIGINS configured, allowing all origins (not recommended for production)")
	}

	allowed := make(map[string]bool, len(s.origins))
	for _, o := range s.origins {
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case len(allowed) == 0:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case allowed[origin]:
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", strings.Join([]string{http.MethodGet, http.MethodPost, http.MethodOptions}, ", "))
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
