// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// Database backend: "sqlite" or "postgres"
	DBDriver string `env:"VITRINE_DB_DRIVER" envDefault:"sqlite"`
	DBPath   string `env:"VITRINE_DB_PATH" envDefault:"./data/vitrine.db"`
	DBDSN    string `env:"VITRINE_DB_DSN"` // PostgreSQL DSN, required when DBDriver=postgres

	// Connection pool
	DBMaxOpenConns int `env:"VITRINE_DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns int `env:"VITRINE_DB_MAX_IDLE_CONNS" envDefault:"10"`

	SessionSecret string `env:"VITRINE_SESSION_SECRET,required"`
	ServerHost    string `env:"VITRINE_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"VITRINE_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"VITRINE_ENV" envDefault:"development"`

	LogLevel   string `env:"VITRINE_LOG_LEVEL" envDefault:"info"`
	UploadsDir string `env:"VITRINE_UPLOADS_DIR" envDefault:"./uploads"`
	StaticDir  string `env:"VITRINE_STATIC_DIR"` // Optional prebuilt site bundle to serve

	// Cache configuration
	RedisURL     string `env:"VITRINE_REDIS_URL"`                          // Optional Redis URL for distributed caching
	CachePrefix  string `env:"VITRINE_CACHE_PREFIX" envDefault:"vitrine:"` // Redis key prefix
	CacheTTL     int    `env:"VITRINE_CACHE_TTL" envDefault:"3600"`        // Default cache TTL in seconds
	CacheMaxSize int    `env:"VITRINE_CACHE_MAX_SIZE" envDefault:"10000"`  // Max memory cache entries

	// Retention windows for the scheduler, in days
	EventRetentionDays   int `env:"VITRINE_EVENT_RETENTION_DAYS" envDefault:"90"`
	ContactRetentionDays int `env:"VITRINE_CONTACT_RETENTION_DAYS" envDefault:"365"`
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

// UsePostgres returns true if the PostgreSQL backend is selected.
func (c Config) UsePostgres() bool {
	return c.DBDriver == "postgres"
}

// MinSessionSecretLength is the minimum required length for the session secret.
// AES-256 requires 32 bytes minimum for secure encryption.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "postgres" {
		return nil, fmt.Errorf("VITRINE_DB_DRIVER must be sqlite or postgres, got %q", cfg.DBDriver)
	}
	if cfg.UsePostgres() && cfg.DBDSN == "" {
		return nil, fmt.Errorf("VITRINE_DB_DSN is required when VITRINE_DB_DRIVER=postgres")
	}

	// Validate session secret length
	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("VITRINE_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	// Reject known weak/default secrets
	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("VITRINE_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("VITRINE_SESSION_SECRET has low character diversity; " +
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
