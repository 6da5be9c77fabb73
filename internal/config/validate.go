package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

func (c *Config) validate() error {
	if err := c.validateCorpus(); err != nil {
		return err
	}

	if err := c.validateNetwork(); err != nil {
		return err
	}

	if err := c.validateRedis(); err != nil {
		return err
	}

	return c.validateCORS()
}

// validateCorpus checks that exactly one corpus backend is configured.
func (c *Config) validateCorpus() error {
	hasDir := c.DataDir != ""
	hasDB := c.DatabaseURL.Value() != ""

	if !hasDir && !hasDB {
		return fmt.Errorf("one of DATA_DIR or DATABASE_URL is required")
	}

	if hasDir && hasDB {
		return fmt.Errorf("DATA_DIR and DATABASE_URL are mutually exclusive")
	}

	if hasDB {
		dbURL, err := url.Parse(c.DatabaseURL.Value())
		if err != nil {
			return fmt.Errorf("DATABASE_URL is not a valid URL: %w", err)
		}

		if dbURL.Scheme != "postgres" && dbURL.Scheme != "postgresql" {
			return fmt.Errorf("DATABASE_URL scheme must be postgres:// or postgresql://")
		}

		if dbURL.Hostname() == "" {
			return fmt.Errorf("DATABASE_URL must include a host")
		}
	}

	return nil
}

func (c *Config) validateNetwork() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("PORT must be a valid integer: %w", err)
	}

	if port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}

	return nil
}

func (c *Config) validateRedis() error {
	if c.RedisURL.Value() == "" {
		return nil
	}

	u, err := url.Parse(c.RedisURL.Value())
	if err != nil {
		return fmt.Errorf("REDIS_URL is not a valid URL: %w", err)
	}

	if u.Scheme != "redis" && u.Scheme != "rediss" {
		return fmt.Errorf("REDIS_URL scheme must be redis:// or rediss://")
	}

	return nil
}

func (c *Config) validateCORS() error {
	if c.AllowAllOrigins() {
		return nil
	}

	for _, origin := range c.CORSOrigins {
		if strings.ContainsAny(origin, "*?[]") {
			return fmt.Errorf("CORS_ORIGINS must not contain glob characters (*?[]), got %q", origin)
		}
		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("CORS_ORIGINS contains invalid origin %q (must have scheme and host)", origin)
		}
	}

	return nil
}
