package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/okian/restaurants/pkg/logger"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS restaurants (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL,
		location   TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS menu_items (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		restaurant_id INTEGER NOT NULL,
		name          TEXT NOT NULL,
		description   TEXT NOT NULL DEFAULT '',
		price         REAL NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_menu_items_restaurant_id ON menu_items (restaurant_id)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS restaurants (
		id         BIGSERIAL PRIMARY KEY,
		name       TEXT NOT NULL,
		location   TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS menu_items (
		id            BIGSERIAL PRIMARY KEY,
		restaurant_id BIGINT NOT NULL,
		name          TEXT NOT NULL,
		description   TEXT NOT NULL DEFAULT '',
		price         NUMERIC(10, 2) NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_menu_items_restaurant_id ON menu_items (restaurant_id)`,
}

// Migrate creates the tables and indexes that do not exist yet. Menu items
// reference restaurants by id only; cascades are done by the application.
func (d *DB) Migrate(ctx context.Context) error {
	stmts := sqliteSchema
	if d.dialect == Postgres {
		stmts = postgresSchema
	}
	err := d.WithTx(ctx, func(q Querier) error {
		for _, stmt := range stmts {
			if _, err := q.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMigrate, err)
	}
	d.logger.Info(ctx, "schema ready", logger.Int("statements", len(stmts)))
	return nil
}

// timestamp scans the created_at column, which drivers hand back either as
// time.Time or as text depending on backend and column declaration.
type timestamp struct{ t *time.Time }

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

func (s timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s.t = time.Time{}
		return nil
	case time.Time:
		*s.t = v.UTC()
		return nil
	case []byte:
		return s.parse(string(v))
	case string:
		return s.parse(v)
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
}

func (s timestamp) parse(v string) error {
	v = strings.TrimSpace(v)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			*s.t = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("unparseable timestamp %q", v)
}

// notFound maps sql.ErrNoRows to ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
