// Package config loads the process environment once at startup into an
// immutable Config snapshot. Nothing downstream reads os.Getenv directly;
// every component that needs a configured value receives it through
// this struct.
package config

import (
	"os"
	"strings"

	"github.com/ironsheep/floorplan-detectd/internal/logging"
)

// Config is the immutable snapshot of process configuration.
type Config struct {
	// AllowedOrigins is the CORS allow-list, parsed from a comma-separated
	// ALLOWED_ORIGINS. Empty means "no explicit allow-list configured" —
	// the HTTP layer falls back to a permissive default and logs a
	// warning, since this is not secure for production use.
	AllowedOrigins []string

	// VisionModel is the multimodal model name the vision wall extractor
	// is constructed with. A request's vision_model field is accepted but
	// not applied: every request uses this model.
	VisionModel string

	// OpenAIAPIKey authenticates calls to the LM and vision wall
	// extractors. Required only by strategies that use them.
	OpenAIAPIKey string

	// Port is the TCP port the HTTP server listens on.
	Port string

	// LogLevel gates the leveled logger.
	LogLevel logging.Level
}

// Load reads environment variables into a Config snapshot.
func Load() Config {
	return Config{
		AllowedOrigins: splitCommaList(getEnv("ALLOWED_ORIGINS", "")),
		VisionModel:    getEnv("VISION_MODEL", "gpt-4o-mini"),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		Port:           getEnv("PORT", "8080"),
		LogLevel:       logging.ParseLevel(getEnv("FLOORPLAN_LOG_LEVEL", "info")),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func splitCommaList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
