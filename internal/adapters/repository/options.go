package repository

import (
	"time"

	"github.com/okian/restaurants/pkg/logger"
)

// Option applies a configuration option to the DB.
type Option func(*DB)

// WithMaxOpenConns caps open connections. Ignored for sqlite, which always
// uses a single shared connection.
func WithMaxOpenConns(n int) Option {
	return func(d *DB) {
		if n > 0 {
			d.maxOpenConns = n
		}
	}
}

// WithMaxIdleConns sets the idle pool size.
func WithMaxIdleConns(n int) Option {
	return func(d *DB) {
		if n >= 0 {
			d.maxIdleConns = n
		}
	}
}

// WithConnMaxLifetime recycles connections older than lifetime. Zero keeps
// them forever.
func WithConnMaxLifetime(lifetime time.Duration) Option {
	return func(d *DB) {
		if lifetime >= 0 {
			d.connMaxLifetime = lifetime
		}
	}
}

// WithLogger sets the logger used for connection and migration events.
func WithLogger(l logger.Logger) Option {
	return func(d *DB) {
		if l != nil {
			d.logger = l
		}
	}
}
