// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"VSPAZE_DB_PATH" envDefault:"./data/console.db"`
	SessionSecret string `env:"VSPAZE_SESSION_SECRET,required"`
	ServerHost    string `env:"VSPAZE_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"VSPAZE_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"VSPAZE_ENV" envDefault:"development"`
	LogLevel      string `env:"VSPAZE_LOG_LEVEL" envDefault:"info"`

	// Institute backend API
	APIBaseURL string        `env:"VSPAZE_API_BASE_URL,required"` // e.g. https://api.vspaze.com/api
	APIToken   string        `env:"VSPAZE_API_TOKEN"`             // bearer credential attached to every call
	APITimeout time.Duration `env:"VSPAZE_API_TIMEOUT" envDefault:"15s"`

	// Cache configuration
	RedisURL     string `env:"VSPAZE_REDIS_URL"`                         // Optional Redis URL for distributed caching
	CachePrefix  string `env:"VSPAZE_CACHE_PREFIX" envDefault:"vspaze:"` // Redis key prefix
	CacheTTL     int    `env:"VSPAZE_CACHE_TTL" envDefault:"60"`         // Default cache TTL in seconds
	CacheMaxSize int    `env:"VSPAZE_CACHE_MAX_SIZE" envDefault:"1000"`  // Max memory cache entries

	// Sidebar badge refresh
	BadgeRefreshInterval time.Duration `env:"VSPAZE_BADGE_REFRESH_INTERVAL" envDefault:"1s"`

	// GeoIP configuration
	GeoIPDBPath string `env:"VSPAZE_GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb file

	// Seeding configuration
	DoSeed bool `env:"VSPAZE_DO_SEED" envDefault:"true"` // Seed default admin and settings
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

// GeoIPEnabled returns true if GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
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
		return nil, fmt.Errorf("VSPAZE_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("VSPAZE_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !strings.HasPrefix(cfg.APIBaseURL, "http://") && !strings.HasPrefix(cfg.APIBaseURL, "https://") {
		return nil, fmt.Errorf("VSPAZE_API_BASE_URL must be an absolute http(s) URL, got %q", cfg.APIBaseURL)
	}

	if cfg.BadgeRefreshInterval < time.Second {
		slog.Warn("badge refresh interval below 1s, clamping", "requested", cfg.BadgeRefreshInterval)
		cfg.BadgeRefreshInterval = time.Second
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("VSPAZE_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
