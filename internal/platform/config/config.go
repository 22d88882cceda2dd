// Copyright (c) 2026 Datacore. All rights reserved.

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A local '.env' file is
loaded first through 'joho/godotenv' when present.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (backend client, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Configuration Schema

// Config holds all runtime configuration for the Datacore API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Datacore backend JSON API
	BackendURL     string        `env:"BACKEND_URL,required,notEmpty"`
	BackendTimeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"15s"`

	// Key-Value Cache (Redis). Empty disables the entity cache.
	RedisURL          string        `env:"REDIS_URL"`
	RedisPoolSize     int           `env:"REDIS_POOL_SIZE"      envDefault:"10"`
	RedisMinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	RedisTimeout      time.Duration `env:"REDIS_TIMEOUT"        envDefault:"2s"`
	EntityCacheTTL    time.Duration `env:"ENTITY_CACHE_TTL"     envDefault:"10m"`

	// Per-IP rate limiting
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"50"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"100"`

	// Notes workspace sessions
	SessionIdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT"  envDefault:"30m"`
	NotesFlushOnSwitch bool          `env:"NOTES_FLUSH_ON_SWITCH" envDefault:"false"`

	// Cross-Origin Resource Sharing
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// A missing .env file is the normal case outside local development.
	_ = godotenv.Load()

	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// CacheEnabled reports whether a Redis URL was configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != ""
}
