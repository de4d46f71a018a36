// ABOUTME: Environment-driven configuration for the helpdesk client
// ABOUTME: Loads .env then process env into a typed struct

package config

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"github.com/1234-ad/ticketing-system/internal/credentials"
)

// Config holds the client's runtime settings.
type Config struct {
	// APIURL is the backend base URL, including the /api prefix.
	APIURL string `env:"HELPDESK_API_URL, default=http://localhost:8080/api"`
	// LogLevel is the minimum debug-log level: trace, debug, info, warn, error.
	LogLevel string `env:"HELPDESK_LOG_LEVEL, default=info"`
	// ConfigDir overrides where credentials and the debug log live.
	ConfigDir string `env:"HELPDESK_CONFIG_DIR"`
}

// Load reads .env (if present) and the process environment.
func Load(ctx context.Context) (*Config, error) {
	// Missing .env is fine; explicit env always wins over file values.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.ConfigDir == "" {
		cfg.ConfigDir = credentials.DefaultDir()
	}
	return &cfg, nil
}
