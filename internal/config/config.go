// Package config reads process settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server configures cmd/server.
type Server struct {
	Addr          string        `env:"FORECAST_ADDR"           envDefault:":8080"`
	Catalog       string        `env:"FORECAST_CATALOG"        envDefault:"configs/patches.yaml"`
	Workers       int           `env:"FORECAST_WORKERS"`
	MaxTrials     int           `env:"FORECAST_MAX_TRIALS"     envDefault:"1000000"`
	WatchInterval time.Duration `env:"FORECAST_WATCH_INTERVAL" envDefault:"5s"`
	LogLevel      slog.Level    `env:"LOG_LEVEL"               envDefault:"INFO"`
}

// CLI holds the defaults of cmd/forecast. Flags override them.
type CLI struct {
	Catalog  string     `env:"FORECAST_CATALOG" envDefault:"configs/patches.yaml"`
	Run      []string   `env:"FORECAST_RUN"     envDefault:"configs/run.yaml" envSeparator:","`
	Workers  int        `env:"FORECAST_WORKERS"`
	LogLevel slog.Level `env:"LOG_LEVEL"        envDefault:"WARN"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadServer parses the server settings and checks their bounds.
func LoadServer() (Server, error) {
	var cfg Server
	if err := ParseEnv(&cfg); err != nil {
		return Server{}, err
	}
	if cfg.Workers < 0 {
		return Server{}, fmt.Errorf("FORECAST_WORKERS must be >= 0, got %d", cfg.Workers)
	}
	if cfg.MaxTrials <= 0 {
		return Server{}, fmt.Errorf("FORECAST_MAX_TRIALS must be > 0, got %d", cfg.MaxTrials)
	}
	if cfg.WatchInterval <= 0 {
		return Server{}, fmt.Errorf("FORECAST_WATCH_INTERVAL must be > 0, got %s", cfg.WatchInterval)
	}
	return cfg, nil
}

// LoadCLI parses the CLI defaults.
func LoadCLI() (CLI, error) {
	var cfg CLI
	if err := ParseEnv(&cfg); err != nil {
		return CLI{}, err
	}
	return cfg, nil
}

// SetupLogging installs a text handler on stderr as the default logger.
func SetupLogging(level slog.Level) {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
