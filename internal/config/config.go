package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// DefaultAccessCode authenticates requests when no code is configured.
// The original deployment shipped with this value; a configured
// THISLIFE_ACCESS_CODE always takes precedence.
const DefaultAccessCode = "Alpha#12345"

// Config holds the configuration for the planner service.
// Environment variables are parsed from the THISLIFE_ prefix,
// e.g. THISLIFE_HTTP_PORT, THISLIFE_DB_DRIVER.
type Config struct {
	// AccessCode is the shared secret checked against the x-access-code header.
	AccessCode string `envconfig:"ACCESS_CODE" default:""`

	// DBDriver selects the collections backend: local, sqlite or postgres.
	// "auto" derives postgres when a DSN is set, sqlite when a path is set,
	// and local otherwise.
	DBDriver string `envconfig:"DB_DRIVER" default:"auto"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Postgres Configuration
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// SQLite Configuration
	SQLitePath string `envconfig:"SQLITE_PATH" default:""`

	// PushDebounceMs is the client-side debounce window for cloud pushes.
	PushDebounceMs int `envconfig:"PUSH_DEBOUNCE_MS" default:"700"`
}

// ResolveDefaults validates the driver selection and fills derived values.
func (c *Config) ResolveDefaults() error {
	if c.AccessCode == "" {
		c.AccessCode = DefaultAccessCode
	}
	c.AccessCode = strings.TrimSpace(c.AccessCode)

	if c.DBDriver == "" || c.DBDriver == "auto" {
		switch {
		case c.PostgresDSN != "":
			c.DBDriver = "postgres"
		case c.SQLitePath != "":
			c.DBDriver = "sqlite"
		default:
			c.DBDriver = "local"
		}
	}

	switch c.DBDriver {
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("DB_DRIVER=postgres requires POSTGRES_DSN")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("DB_DRIVER=sqlite requires SQLITE_PATH")
		}
	case "local":
		// zero-config mode: the factory backs this with sqlite under
		// ~/.this-life, so collection endpoints still work.
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	return nil
}

// RicherBackend reports whether an explicitly configured backend is in use,
// as opposed to the zero-config sqlite file under the home directory.
func (c *Config) RicherBackend() bool { return c.DBDriver != "local" }

// New creates a Config by parsing THISLIFE_-prefixed environment variables.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("THISLIFE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("db_driver", cfg.DBDriver).
		Int("port", cfg.HTTPPort).
		Bool("access_code_configured", cfg.AccessCode != DefaultAccessCode).
		Bool("richer_backend", cfg.RicherBackend()).
		Msg("Configuration loaded")

	return &cfg, nil
}
