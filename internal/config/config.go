// Package config provides environment-driven configuration for the atlas API.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/oatlas/oatlas/internal/search"
)

// Secret wraps a sensitive string to prevent accidental logging or marshalling.
type Secret string

// String implements fmt.Stringer, returning a redacted placeholder.
func (s Secret) String() string { return "[REDACTED]" }

// GoString implements fmt.GoStringer, returning a redacted placeholder.
func (s Secret) GoString() string { return "[REDACTED]" }

// MarshalText implements encoding.TextMarshaler, returning a redacted placeholder.
func (s Secret) MarshalText() ([]byte, error) { return []byte("[REDACTED]"), nil }

// Value returns the underlying secret string.
func (s Secret) Value() string { return string(s) }

// Config holds all application configuration values.
type Config struct {
	Port        string
	ListenHost  string
	CORSOrigins []string

	// Exactly one of DataDir and DatabaseURL selects the corpus backend.
	DataDir     string
	DatabaseURL Secret

	RedisURL Secret
	CacheTTL time.Duration

	LogLevel string

	// BuildToken identifies the dataset build; echoed in responses so edge
	// caches can be invalidated precisely on data refresh.
	BuildToken string

	Search search.Config
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        envOrDefault("PORT", "8080"),
		ListenHost:  envOrDefault("LISTEN_HOST", "0.0.0.0"),
		DataDir:     envOrDefault("DATA_DIR", ""),
		DatabaseURL: Secret(envOrDefault("DATABASE_URL", "")),
		RedisURL:    Secret(envOrDefault("REDIS_URL", "")),
		LogLevel:    envOrDefault("LOG_LEVEL", "info"),
		BuildToken:  envOrDefault("BUILD_TOKEN", "dev"),
	}

	ttlSeconds, err := intEnv("CACHE_TTL", 600, 1, 86400)
	if err != nil {
		return nil, err
	}
	cfg.CacheTTL = time.Duration(ttlSeconds) * time.Second

	if cfg.Search.MinAcronymLen, err = intEnv("SEARCH_MIN_ACRONYM_LEN", 2, 1, 10); err != nil {
		return nil, err
	}
	if cfg.Search.FuzzyMaxDistance, err = intEnv("SEARCH_FUZZY_MAX_DISTANCE", 1, 0, 3); err != nil {
		return nil, err
	}
	if cfg.Search.FuzzyMinTokenLen, err = intEnv("SEARCH_FUZZY_MIN_TOKEN_LEN", 4, 1, 20); err != nil {
		return nil, err
	}

	origins := envOrDefault("CORS_ORIGINS", "*")
	cfg.CORSOrigins = strings.Split(origins, ",")

	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address in host:port format.
func (c *Config) Addr() string {
	return c.ListenHost + ":" + c.Port
}

// AllowAllOrigins reports whether CORS is configured wide open.
func (c *Config) AllowAllOrigins() bool {
	return len(c.CORSOrigins) == 1 && c.CORSOrigins[0] == "*"
}

// CacheEnabled reports whether the query cache is configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL.Value() != ""
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func intEnv(key string, fallback, lo, hi int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v < lo || v > hi {
		return 0, fmt.Errorf("%s must be an integer between %d and %d", key, lo, hi)
	}

	return v, nil
}
