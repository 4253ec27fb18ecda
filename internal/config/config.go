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

// Supported AI provider identifiers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath          string `env:"NEWSDASH_DB_PATH" envDefault:"./data/newsdash.db"`
	SessionSecret   string `env:"NEWSDASH_SESSION_SECRET,required"`
	ServerHost      string `env:"NEWSDASH_SERVER_HOST" envDefault:"localhost"`
	ServerPort      int    `env:"NEWSDASH_SERVER_PORT" envDefault:"8080"`
	Env             string `env:"NEWSDASH_ENV" envDefault:"development"`
	LogLevel        string `env:"NEWSDASH_LOG_LEVEL" envDefault:"info"`
	DefaultLanguage string `env:"NEWSDASH_DEFAULT_LANGUAGE" envDefault:"zh"`

	// Cache configuration
	RedisURL     string `env:"NEWSDASH_REDIS_URL"`                           // Optional Redis URL for shared result caching
	CachePrefix  string `env:"NEWSDASH_CACHE_PREFIX" envDefault:"newsdash:"` // Redis key prefix
	CacheTTL     int    `env:"NEWSDASH_CACHE_TTL" envDefault:"900"`          // Default cache TTL in seconds
	CacheMaxSize int    `env:"NEWSDASH_CACHE_MAX_SIZE" envDefault:"1000"`    // Max memory cache entries

	// Generative AI configuration. The API key itself is stored in the settings table.
	AIProvider string `env:"NEWSDASH_AI_PROVIDER" envDefault:"gemini"`
	TextModel  string `env:"NEWSDASH_TEXT_MODEL"`
	ImageModel string `env:"NEWSDASH_IMAGE_MODEL"`

	// Empty disables the periodic hot news refresh.
	NewsRefreshSchedule string `env:"NEWSDASH_NEWS_REFRESH_SCHEDULE" envDefault:"*/30 * * * *"`

	UploadMaxBytes    int64   `env:"NEWSDASH_UPLOAD_MAX_BYTES" envDefault:"10485760"`
	GenerateRateLimit float64 `env:"NEWSDASH_GENERATE_RATE_LIMIT" envDefault:"0.2"` // Generation requests per second per client
	GenerateBurst     int     `env:"NEWSDASH_GENERATE_BURST" envDefault:"5"`

	// Optional MaxMind GeoLite2-Country database for sign-in audit entries.
	GeoIPDBPath string `env:"NEWSDASH_GEOIP_DB_PATH"`
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

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("NEWSDASH_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.SessionSecret) < MinSessionSecretLength {
		return fmt.Errorf("NEWSDASH_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(c.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if c.SessionSecret == weak {
			return fmt.Errorf("NEWSDASH_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	c.AIProvider = strings.ToLower(strings.TrimSpace(c.AIProvider))
	switch c.AIProvider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("NEWSDASH_AI_PROVIDER must be %q or %q, got %q", ProviderGemini, ProviderOpenAI, c.AIProvider)
	}

	c.DefaultLanguage = strings.ToLower(c.DefaultLanguage)
	if c.DefaultLanguage != "zh" && c.DefaultLanguage != "en" {
		return fmt.Errorf("NEWSDASH_DEFAULT_LANGUAGE must be zh or en, got %q", c.DefaultLanguage)
	}

	return nil
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
