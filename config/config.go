// Package config loads service configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config carries everything main needs to wire the service. Redis is
// optional: without it command deduplication and snapshot caching are
// disabled and the board still works.
type Config struct {
	ListenAddr            string        `env:"LISTEN_ADDR" envDefault:":8080"`
	Debug                 bool          `env:"DEBUG"`
	RedisConnectionString string        `env:"REDIS_CONNECTION_STRING"`
	DeduperTTL            time.Duration `env:"DEDUPER_TTL" envDefault:"24h"`
	CacheTTL              time.Duration `env:"CACHE_TTL" envDefault:"5m"`
	CORSOrigins           []string      `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
	MaxBodyBytes          int64         `env:"MAX_BODY_BYTES" envDefault:"65536"`
}

// Load parses the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DeduperTTL <= 0 {
		return Config{}, fmt.Errorf("invalid DEDUPER_TTL: must be greater than zero")
	}
	if cfg.CacheTTL < 0 {
		return Config{}, fmt.Errorf("invalid CACHE_TTL: must not be negative")
	}
	return cfg, nil
}
