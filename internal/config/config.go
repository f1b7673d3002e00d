// Package config defines service configuration and its loading.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers a YAML file and APPRAISAL_* env vars on top of the defaults.
package config

import (
	"context"
	"fmt"

	"github.com/okian/appraisal/internal/domain/appraisal"
	"github.com/okian/appraisal/internal/money"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFile, when set, sends logs to a file instead of stdout.
	LogFile string `koanf:"log_file"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DefaultPreset is used when a request names no preset.
	DefaultPreset string `koanf:"default_preset"`

	// ReferenceYear fixes the year vehicle age is measured from; 0 means
	// the current year.
	ReferenceYear int `koanf:"reference_year"`

	// Locale and Currency drive amount formatting.
	Locale   string `koanf:"locale"`
	Currency string `koanf:"currency"`

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`
}

// New returns a Config populated with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:      "info",
		Addr:          ":9080",
		DefaultPreset: string(appraisal.PresetRated),
		Locale:        "id",
		Currency:      "IDR",
		MaxBodyBytes:  64 << 10,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if _, err := appraisal.ParsePreset(c.DefaultPreset, appraisal.PresetRated); err != nil {
		return fmt.Errorf("%w: default_preset: %w", ErrInvalidConfig, err)
	}
	if c.ReferenceYear < 0 {
		return fmt.Errorf("%w: reference_year must not be negative", ErrInvalidConfig)
	}
	if _, err := money.New(c.Locale, c.Currency); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: max_body_bytes must be positive", ErrInvalidConfig)
	}
	return nil
}

// Preset resolves DefaultPreset. Call after Validate.
func (c *Config) Preset() appraisal.Preset {
	p, err := appraisal.ParsePreset(c.DefaultPreset, appraisal.PresetRated)
	if err != nil {
		return appraisal.PresetRated
	}
	return p
}

// FormulaOptions are the calculator options implied by the config.
func (c *Config) FormulaOptions() []appraisal.Option {
	return []appraisal.Option{appraisal.WithReferenceYear(c.ReferenceYear)}
}
