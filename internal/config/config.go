// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load layers defaults, an optional YAML file and RESTO_* environment variables.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBDriver selects the storage backend: postgres or sqlite.
	DBDriver string `koanf:"db_driver"`

	// DBDSN is the driver-specific connection string.
	DBDSN string `koanf:"db_dsn"`

	// DBMaxOpenConns and DBMaxIdleConns size the postgres pool.
	DBMaxOpenConns int `koanf:"db_max_open_conns"`
	DBMaxIdleConns int `koanf:"db_max_idle_conns"`

	// DBConnMaxLifetimeSec recycles pooled connections; 0 disables.
	DBConnMaxLifetimeSec int `koanf:"db_conn_max_lifetime_sec"`

	// Migrate creates missing tables at startup.
	Migrate bool `koanf:"migrate"`

	// CORSAllowedOrigins is a comma separated origin list; "*" allows any.
	CORSAllowedOrigins string `koanf:"cors_allowed_origins"`

	// HTTP server timeouts in seconds.
	ReadTimeoutSec     int `koanf:"read_timeout_sec"`
	WriteTimeoutSec    int `koanf:"write_timeout_sec"`
	ShutdownTimeoutSec int `koanf:"shutdown_timeout_sec"`

	// MetricsNamespace prefixes every exported metric name.
	MetricsNamespace string `koanf:"metrics_namespace"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":8080",
		DBDriver:           "sqlite",
		DBDSN:              "restaurants.db",
		DBMaxOpenConns:     10,
		DBMaxIdleConns:     2,
		Migrate:            true,
		CORSAllowedOrigins: "*",
		ReadTimeoutSec:     10,
		WriteTimeoutSec:    10,
		ShutdownTimeoutSec: 30,
		MetricsNamespace:   "resto",
	}
}

// ConnMaxLifetime returns DBConnMaxLifetimeSec as a duration.
func (c *Config) ConnMaxLifetime() time.Duration {
	return time.Duration(c.DBConnMaxLifetimeSec) * time.Second
}

// ReadTimeout returns ReadTimeoutSec as a duration.
func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSec) * time.Second
}

// WriteTimeout returns WriteTimeoutSec as a duration.
func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSec) * time.Second
}

// ShutdownTimeout returns ShutdownTimeoutSec as a duration.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSec) * time.Second
}
