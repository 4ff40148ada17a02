// Package config provides environment-driven configuration for the
// garagedesk client.
package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config holds the runtime settings for the client.
type Config struct {
	// APIBaseURL is the origin of the backend REST API. Required:
	// the client is unusable without it and Load fails fast.
	APIBaseURL string `env:"API_BASE_URL, required"`

	// LogLevel is the minimum log level: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// LogPretty switches to human-readable console logging.
	LogPretty bool `env:"LOG_PRETTY, default=false"`

	// HTTPTimeout bounds each backend call. Zero leaves the
	// transport's default behavior in place.
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT"`

	// SessionFile overrides the default credential-store location.
	SessionFile string `env:"SESSION_FILE"`
}

// Load reads configuration from the environment, after loading a .env
// file when one is present in the working directory.
func Load(ctx context.Context) (*Config, error) {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	return &cfg, nil
}
