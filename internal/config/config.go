// Package config loads and validates application configuration from
// environment variables and the routing-table YAML document.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values for the gateway.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string for the screens store. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins for /api.
	// Defaults to ["http://localhost:3000"] (SPA dev server).
	CORSOrigins []string

	// RedisURL selects the Redis session store, e.g. "redis://localhost:6379/0".
	// Empty means sessions are kept in process memory.
	RedisURL string

	// SessionTTL is how long an idle browser session context is retained.
	SessionTTL time.Duration

	// RebateAPIURL is the base URL of the rebate provider.
	RebateAPIURL string

	// RebateAPIKey is the bearer token for the rebate provider.
	RebateAPIKey string

	// RebateTimeout bounds a single rebate provider call.
	RebateTimeout time.Duration

	// RebateCacheTTL is how long a categorized rebate lookup is cached.
	RebateCacheTTL time.Duration

	// StaticDir holds the built SPA (index.html and assets).
	StaticDir string

	// MigrateOnStart applies pending goose migrations before serving.
	MigrateOnStart bool

	// SecureCookies marks the session cookie Secure. Defaults to true;
	// turn it off only for plain-HTTP local development.
	SecureCookies bool

	// WhiteLabelsFile overrides the embedded routing tables when set.
	WhiteLabelsFile string
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set and any
// values that cannot be parsed.
func Load() (Config, error) {
	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CORSOrigins:     splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		RedisURL:        os.Getenv("REDIS_URL"),
		RebateAPIURL:    getEnv("REBATE_API_URL", "https://api.rewiringamerica.org"),
		RebateAPIKey:    os.Getenv("REBATE_API_KEY"),
		StaticDir:       getEnv("STATIC_DIR", "./build"),
		WhiteLabelsFile: os.Getenv("WHITE_LABELS_FILE"),
	}

	var missing, invalid []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	durations := []struct {
		key      string
		fallback string
		dst      *time.Duration
	}{
		{"SESSION_TTL", "24h", &cfg.SessionTTL},
		{"REBATE_TIMEOUT", "10s", &cfg.RebateTimeout},
		{"REBATE_CACHE_TTL", "15m", &cfg.RebateCacheTTL},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(getEnv(d.key, d.fallback))
		if err != nil || v <= 0 {
			invalid = append(invalid, d.key)
			continue
		}
		*d.dst = v
	}

	migrate, err := strconv.ParseBool(getEnv("MIGRATE_ON_START", "false"))
	if err != nil {
		invalid = append(invalid, "MIGRATE_ON_START")
	}
	cfg.MigrateOnStart = migrate

	secure, err := strconv.ParseBool(getEnv("SECURE_COOKIES", "true"))
	if err != nil {
		invalid = append(invalid, "SECURE_COOKIES")
	}
	cfg.SecureCookies = secure

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
