// Package config defines service configuration structures and loading hooks.
//
// Conventions:
//   - New() builds a Config with defaults; Load(ctx) layers file and env on top.
//   - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"math"
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// RiskThreshold is the initial binary decision threshold in [0,1].
	RiskThreshold float64 `koanf:"risk_threshold"`

	// WorkerCount sets the number of batch job workers.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the in-memory job queue.
	QueueSize int `koanf:"queue_size"`

	// DedupeSize bounds the remembered job IDs.
	DedupeSize int `koanf:"dedupe_size"`

	// BatchConcurrency caps parallel predictions inside one batch.
	BatchConcurrency int `koanf:"batch_concurrency"`

	// MaxTopLimit caps GET /risk/top?limit.
	MaxTopLimit int `koanf:"max_top_limit"`

	// ReplacementCostFraction is the share of salary a replacement costs.
	ReplacementCostFraction float64 `koanf:"replacement_cost_fraction"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:                "info",
		LogFormat:               "text",
		Addr:                    ":9080",
		RiskThreshold:           0.5,
		WorkerCount:             4,
		QueueSize:               1024,
		DedupeSize:              10_000,
		BatchConcurrency:        runtime.NumCPU(),
		MaxTopLimit:             100,
		ReplacementCostFraction: 0.5,
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case math.IsNaN(c.RiskThreshold) || c.RiskThreshold < 0 || c.RiskThreshold > 1:
		return fmt.Errorf("%w: risk_threshold %v outside [0,1]", ErrInvalidConfig, c.RiskThreshold)
	case c.WorkerCount <= 0:
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	case c.QueueSize <= 0:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	case c.DedupeSize <= 0:
		return fmt.Errorf("%w: dedupe_size must be positive", ErrInvalidConfig)
	case c.BatchConcurrency <= 0:
		return fmt.Errorf("%w: batch_concurrency must be positive", ErrInvalidConfig)
	case c.MaxTopLimit <= 0:
		return fmt.Errorf("%w: max_top_limit must be positive", ErrInvalidConfig)
	case c.ReplacementCostFraction < 0:
		return fmt.Errorf("%w: replacement_cost_fraction must not be negative", ErrInvalidConfig)
	}
	return nil
}
