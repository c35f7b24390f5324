package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if DEBATEMATCHER_CONFIG is set
//  3. env (prefix DEBATEMATCHER_)
func Load(ctx context.Context) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base := New()

	k := koanf.New(".")

	if path := os.Getenv("DEBATEMATCHER_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: DEBATEMATCHER_SEARCH_ITERATIONS, ...
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("DEBATEMATCHER_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "debatematcher_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if cfg.SearchIterations < 1 {
		return nil, fmt.Errorf("%w: search_iterations must be positive", ErrInvalidConfig)
	}
	if cfg.TierMismatchPenalty < 0 || cfg.RematchPenalty < 0 || cfg.PanelBalancePenalty < 0 {
		return nil, fmt.Errorf("%w: penalties must not be negative", ErrInvalidConfig)
	}
	return &cfg, nil
}
