package repository

import "errors"

// Sentinel kinds for storage errors.
var (
	ErrNotFound      = errors.New("row not found")
	ErrConnect       = errors.New("database connection failed")
	ErrUnknownDriver = errors.New("unknown database driver")
	ErrMigrate       = errors.New("schema migration failed")
)
