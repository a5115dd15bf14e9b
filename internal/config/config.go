// Package config loads nervetree runtime settings from the environment.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds the settings shared by the CLI and the examples.
type Config struct {
	LogLevel  string `env:"NERVETREE_LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"NERVETREE_LOG_FORMAT" envDefault:"console"`
	// MaxHops bounds signal forwarding depth; 0 disables the bound.
	MaxHops int `env:"NERVETREE_MAX_HOPS" envDefault:"32"`
	// NetworkFile is a YAML or JSON network description. Empty selects the
	// canonical anatomy.
	NetworkFile string `env:"NERVETREE_NETWORK_FILE"`
	// SnapshotDir enables snapshot persistence when set.
	SnapshotDir    string `env:"NERVETREE_SNAPSHOT_DIR"`
	SnapshotFormat string `env:"NERVETREE_SNAPSHOT_FORMAT" envDefault:"yaml"`
}

// Load reads Config from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log format %q (want console or json)", ErrInvalid, c.LogFormat)
	}
	if c.MaxHops < 0 {
		return fmt.Errorf("%w: max hops %d is negative", ErrInvalid, c.MaxHops)
	}
	switch c.SnapshotFormat {
	case "yaml", "yml", "json":
	default:
		return fmt.Errorf("%w: snapshot format %q (want yaml or json)", ErrInvalid, c.SnapshotFormat)
	}
	return nil
}
