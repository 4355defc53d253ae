package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if MORPH_CONFIG is set
//  3. env (prefix MORPH_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("MORPH_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: MORPH_ADDR, MORPH_FLUSH_INTERVAL_MS, ...
	// Map env keys like MORPH_FLUSH_INTERVAL_MS -> flush_interval_ms (flat
	// keys). Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("MORPH_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "morph_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate enforces the invariants downstream components assume.
func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.IngestURL == "" {
		return fmt.Errorf("%w: ingest_url must not be empty", ErrInvalidConfig)
	}
	if c.FlushIntervalMS <= 0 {
		return fmt.Errorf("%w: flush_interval_ms must be positive", ErrInvalidConfig)
	}
	if c.MaxBatchEvents <= 0 {
		return fmt.Errorf("%w: max_batch_events must be positive", ErrInvalidConfig)
	}
	if c.RageThreshold <= 0 {
		return fmt.Errorf("%w: rage_threshold must be positive", ErrInvalidConfig)
	}
	return nil
}
