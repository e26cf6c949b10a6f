// Package config loads the server's process configuration. The
// sequence is: load a .env file if present (non-fatal when absent),
// populate the Config struct from the environment via envconfig, then
// validate it with struct tags. Threshold configuration is separate:
// it is a per-run input loaded from JSON (see internal/classify), not
// process state.
package config

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// envPrefix namespaces the engine's environment variables, e.g.
// TRACKGEOM_LISTEN_ADDR.
const envPrefix = "TRACKGEOM"

// Config is the process configuration for the analysis server.
type Config struct {
	// ListenAddr is the HTTP listen address.
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8080" validate:"required"`
	// ThresholdPath optionally points at a JSON threshold override
	// file applied to every run that does not carry its own config.
	ThresholdPath string `envconfig:"THRESHOLD_PATH" validate:"omitempty,filepath"`
	// ResolveWindowM is the default half-width in metres of the trend
	// window returned by the chainage resolver.
	ResolveWindowM float64 `envconfig:"RESOLVE_WINDOW_M" default:"50" validate:"gte=0"`
	// MaxUploadBytes caps dataset upload size.
	MaxUploadBytes int64 `envconfig:"MAX_UPLOAD_BYTES" default:"33554432" validate:"gt=0"`
}

// Load reads the configuration from the environment, consulting a
// .env file first when one exists.
func Load() (*Config, error) {
	// A missing .env file is the normal production case.
	if err := godotenv.Load(); err == nil {
		log.Printf("loaded environment from .env")
	}

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
