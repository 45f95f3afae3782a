// Package config loads application settings from, in ascending precedence,
// a YAML file, RECAP_-prefixed environment variables, and command-line flags.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const envPrefix = "RECAP_"

// Config holds all application settings.
type Config struct {
	DB             string `koanf:"db" validate:"required"`            // sqlite database path
	Repos          string `koanf:"repos" validate:"required"`         // checkout dir for git sources
	ResetTimeoutMS int    `koanf:"reset_timeout_ms" validate:"gte=0"` // reset key sequence window
}

// Default returns the configuration used when nothing else overrides it.
func Default() Config {
	return Config{
		DB:             "recap.db",
		Repos:          "repos",
		ResetTimeoutMS: 500,
	}
}

// Load merges the config file (if present), environment variables, and flags
// over the defaults, then validates the result.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	cfg := Default()
	k := koanf.New(".")

	// The config file is optional; only a file that exists but fails to
	// parse is an error.
	if _, statErr := os.Stat(path); statErr == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return cfg, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return cfg, fmt.Errorf("failed to load environment config: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return cfg, fmt.Errorf("failed to load flag config: %w", err)
		}
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
