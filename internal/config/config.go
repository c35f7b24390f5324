// Package config defines engine configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"github.com/mistergarrison/debatematcher/internal/domain/model"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// SearchIterations bounds the randomized pairing search.
	SearchIterations int `koanf:"search_iterations"`

	// TierMismatchPenalty weighs pairing units of different skill tiers.
	TierMismatchPenalty int `koanf:"tier_mismatch_penalty"`

	// RematchPenalty weighs each prior encounter between two units.
	RematchPenalty int `koanf:"rematch_penalty"`

	// PanelBalancePenalty weighs each adjudicator already on a panel.
	PanelBalancePenalty int `koanf:"panel_balance_penalty"`
}

// New creates a Config with default values.
func New() *Config {
	tune := model.DefaultTuning()
	return &Config{
		LogLevel:            "info",
		SearchIterations:    tune.SearchIterations,
		TierMismatchPenalty: tune.TierMismatchPenalty,
		RematchPenalty:      tune.RematchPenalty,
		PanelBalancePenalty: tune.PanelBalancePenalty,
	}
}

// Tuning packs the configured weights into the immutable value the engine
// threads through every call.
func (c *Config) Tuning() model.Tuning {
	return model.Tuning{
		SearchIterations:    c.SearchIterations,
		TierMismatchPenalty: c.TierMismatchPenalty,
		RematchPenalty:      c.RematchPenalty,
		PanelBalancePenalty: c.PanelBalancePenalty,
	}
}
