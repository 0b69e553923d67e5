package app

import (
	"errors"
	"fmt"
	"strings"
)

// Config holds all the necessary configuration for an App instance.
type Config struct {
	Paths    []string // .hcl files or directories
	Sequence string   // sequence to plan or run

	Iterations      int
	WorkerCount     int
	JournalPath     string
	HealthcheckPort int

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg, applies defaults and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, errors.New("invalid log-format: must be 'text' or 'json'")
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "":
		cfg.LogLevel = "info"
	case "debug", "info", "warn", "error":
	default:
		return nil, errors.New("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	if cfg.Iterations == 0 {
		cfg.Iterations = 1
	}
	if cfg.Iterations < 0 {
		return nil, fmt.Errorf("iterations must be positive, got %d", cfg.Iterations)
	}
	if cfg.WorkerCount < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", cfg.WorkerCount)
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("invalid healthcheck-port %d", cfg.HealthcheckPort)
	}

	return &cfg, nil
}
