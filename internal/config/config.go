// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers a YAML file and environment variables over the defaults.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"context"
	"fmt"
	"strings"
)

// Storage adapters understood by Open in the repository package.
const (
	AdapterMemory = "memory"
	AdapterMySQL  = "mysql"
	AdapterSQLite = "sqlite"
	AdapterRedis  = "redis"
)

// Identity lookup modes.
const (
	LookupGetent = "getent"
	LookupStatic = "static"
	LookupNone   = "none"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// MaxLimit caps the limit query parameter on list endpoints.
	MaxLimit int `koanf:"max_limit"`

	Storage  Storage  `koanf:"storage"`
	Identity Identity `koanf:"identity"`
}

// Storage selects and configures the score store.
type Storage struct {
	Adapter string `koanf:"adapter"`
	Table   string `koanf:"table"`
	SQL     SQL    `koanf:"sql"`
	SQLite  SQLite `koanf:"sqlite"`
	Redis   Redis  `koanf:"redis"`
}

// SQL configures the MySQL adapter. DSN wins over the discrete fields.
type SQL struct {
	DSN      string `koanf:"dsn"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Database string `koanf:"database"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
}

// SQLite configures the embedded SQL adapter.
type SQLite struct {
	Path string `koanf:"path"`
}

// Redis configures the Redis adapter.
type Redis struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
	Prefix   string `koanf:"prefix"`
}

// Identity configures how account names become real names.
type Identity struct {
	// Lookup is getent, static or none.
	Lookup string `koanf:"lookup"`

	// Names maps account names to display names; consulted before getent.
	Names map[string]string `koanf:"names"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "text",
		Addr:      ":9080",
		MaxLimit:  100,
		Storage: Storage{
			Adapter: AdapterMemory,
			Table:   "scores",
			SQL: SQL{
				Host:     "127.0.0.1",
				Port:     3306,
				Database: "benchboard",
				User:     "benchboard",
			},
			SQLite: SQLite{Path: "benchboard.db"},
			Redis: Redis{
				Addr:   "127.0.0.1:6379",
				Prefix: "benchboard",
			},
		},
		Identity: Identity{
			Lookup: LookupGetent,
			Names:  map[string]string{},
		},
	}
}

// Validate checks field values that Load cannot coerce.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.MaxLimit <= 0 {
		return fmt.Errorf("%w: max_limit must be positive, got %d", ErrInvalidConfig, c.MaxLimit)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	switch c.Storage.Adapter {
	case AdapterMemory, AdapterSQLite, AdapterRedis:
	case AdapterMySQL:
		if c.Storage.SQL.DSN == "" && c.Storage.SQL.Host == "" {
			return fmt.Errorf("%w: mysql needs storage.sql.dsn or storage.sql.host", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage.adapter %q", ErrInvalidConfig, c.Storage.Adapter)
	}
	switch c.Identity.Lookup {
	case LookupGetent, LookupStatic, LookupNone:
	default:
		return fmt.Errorf("%w: unknown identity.lookup %q", ErrInvalidConfig, c.Identity.Lookup)
	}
	return nil
}
