// Copyright (c) 2026 Inkwell Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	APIBaseURL    string `env:"INKWELL_API_BASE_URL,required"`
	SessionSecret string `env:"INKWELL_SESSION_SECRET,required"`
	DBPath        string `env:"INKWELL_DB_PATH" envDefault:"./data/inkwell.db"`
	ServerHost    string `env:"INKWELL_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"INKWELL_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"INKWELL_ENV" envDefault:"development"`
	LogLevel      string `env:"INKWELL_LOG_LEVEL" envDefault:"info"`

	// Remote API client configuration
	APITimeout int `env:"INKWELL_API_TIMEOUT" envDefault:"30"` // Request timeout in seconds

	// Cache configuration (category counts only)
	RedisURL    string `env:"INKWELL_REDIS_URL"`                          // Optional Redis URL
	CachePrefix string `env:"INKWELL_CACHE_PREFIX" envDefault:"inkwell:"` // Redis key prefix
	CacheTTL    int    `env:"INKWELL_CACHE_TTL" envDefault:"300"`         // Cache TTL in seconds
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// APIRequestTimeout returns the remote API request timeout as a duration.
func (c Config) APIRequestTimeout() time.Duration {
	return time.Duration(c.APITimeout) * time.Second
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("INKWELL_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	base, err := url.Parse(cfg.APIBaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("INKWELL_API_BASE_URL must be an absolute URL, got %q", cfg.APIBaseURL)
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	return cfg, nil
}
