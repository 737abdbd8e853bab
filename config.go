package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the service configuration, loaded from the environment.
type Config struct {
	Port         string `env:"PORT" envDefault:"8080"`
	GCPProjectID string `env:"GCP_PROJECT_ID"`
	GCPRegion    string `env:"GCP_REGION"`
}

// loadConfig parses the configuration from environment variables.
func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
