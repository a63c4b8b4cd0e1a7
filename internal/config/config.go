package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config tunes the feed simulation. Everything has a sensible default so
// the binary runs with no environment at all.
type Config struct {
	PageSize         int           `env:"THREADSCOUT_PAGE_SIZE" envDefault:"15"`
	InitialBatch     int           `env:"THREADSCOUT_INITIAL_BATCH" envDefault:"30"`
	MaxConversations int           `env:"THREADSCOUT_MAX_CONVERSATIONS" envDefault:"100"`
	TickInterval     time.Duration `env:"THREADSCOUT_TICK_INTERVAL" envDefault:"30s"`
	MinLoadDelay     time.Duration `env:"THREADSCOUT_MIN_LOAD_DELAY" envDefault:"500ms"`
	MaxLoadDelay     time.Duration `env:"THREADSCOUT_MAX_LOAD_DELAY" envDefault:"1500ms"`
	NotificationTTL  time.Duration `env:"THREADSCOUT_NOTIFICATION_TTL" envDefault:"4s"`

	// Seed pins the simulation's randomness; zero means time-seeded.
	Seed int64 `env:"THREADSCOUT_SEED" envDefault:"0"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got %d", c.PageSize)
	}
	if c.InitialBatch <= 0 {
		return fmt.Errorf("initial batch must be positive, got %d", c.InitialBatch)
	}
	if c.MaxConversations < c.InitialBatch {
		return fmt.Errorf("max conversations %d below initial batch %d", c.MaxConversations, c.InitialBatch)
	}
	if c.MinLoadDelay < 0 || c.MaxLoadDelay < c.MinLoadDelay {
		return fmt.Errorf("load delay range [%s, %s] is invalid", c.MinLoadDelay, c.MaxLoadDelay)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", c.TickInterval)
	}
	return nil
}
