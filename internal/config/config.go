// Package config loads the optional TOML driver configuration.
// Environment variables are never consulted; settings come from the
// file passed via --config, overridden by command-line flags.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config represents the driver configuration.
type Config struct {
	// Output settings
	Output struct {
		Dir           string `toml:"dir"`
		WriteListings bool   `toml:"write_listings"`
	} `toml:"output"`

	// Execution settings
	Execution struct {
		Optimize  bool `toml:"optimize"`
		Trace     bool `toml:"trace"`
		StepLimit int  `toml:"step_limit"`
	} `toml:"execution"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Output.Dir = "out"
	cfg.Output.WriteListings = true

	cfg.Execution.Optimize = true
	cfg.Execution.Trace = false
	cfg.Execution.StepLimit = 0

	return cfg
}

// Load reads a TOML configuration file, applying defaults for any
// setting the file omits.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q in %s", undecoded[0], path)
	}
	return cfg, nil
}

// LoadOrDefault returns the defaults when path is empty; otherwise it
// loads the config file, failing when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file %s does not exist", path)
	}
	return Load(path)
}
