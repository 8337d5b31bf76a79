package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"  // postgres driver
	_ "modernc.org/sqlite" // pure Go sqlite driver

	"github.com/okian/restaurants/pkg/logger"
	"github.com/okian/restaurants/pkg/metrics"
)

// Dialect names a supported SQL backend. The value doubles as the
// database/sql driver name.
type Dialect string

// Supported dialects.
const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// ParseDialect validates a configured driver name.
func ParseDialect(driver string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(strings.TrimSpace(driver))); d {
	case Postgres, SQLite:
		return d, nil
	case "sqlite3":
		return SQLite, nil
	case "postgresql", "pq":
		return Postgres, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

// Rebind rewrites ? placeholders into the dialect's native form.
// Queries in this package never contain a literal '?'.
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// DB is the process-wide storage handle. It is constructed once by Open and
// injected into the stores; it holds no request state.
type DB struct {
	conn    *sql.DB
	dialect Dialect
	logger  logger.Logger

	maxOpenConns    int
	maxIdleConns    int
	connMaxLifetime time.Duration
}

// Open connects to the database and verifies the connection with a ping.
// Any failure wraps ErrConnect; callers treat it as fatal at startup.
func Open(ctx context.Context, driver, dsn string, opts ...Option) (*DB, error) {
	dialect, err := ParseDialect(driver)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	d := &DB{
		dialect:      dialect,
		logger:       logger.Get(),
		maxOpenConns: 10,
		maxIdleConns: 2,
	}
	for _, opt := range opts {
		opt(d)
	}

	conn, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	if dialect == SQLite {
		// One shared connection: in-memory databases live and die with
		// their connection, and sqlite serializes writers anyway.
		conn.SetMaxOpenConns(1)
		conn.SetMaxIdleConns(1)
		conn.SetConnMaxLifetime(0)
	} else {
		conn.SetMaxOpenConns(d.maxOpenConns)
		conn.SetMaxIdleConns(d.maxIdleConns)
		conn.SetConnMaxLifetime(d.connMaxLifetime)
	}

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	if dialect == SQLite {
		if _, err := conn.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("%w: %w", ErrConnect, err)
		}
	}

	d.conn = conn
	d.logger.Info(ctx, "database connected", logger.String("driver", string(dialect)))
	return d, nil
}

// Dialect reports the backend of the handle.
func (d *DB) Dialect() Dialect { return d.dialect }

// Querier returns the non-transactional querier.
func (d *DB) Querier() Querier { return d.conn }

// Ping checks that the database is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.conn.PingContext(ctx)
}

// Stats exposes the connection pool statistics.
func (d *DB) Stats() sql.DBStats {
	return d.conn.Stats()
}

// Close releases the connection pool.
func (d *DB) Close() error {
	if d.conn == nil {
		return nil
	}
	return d.conn.Close()
}

// WithTx runs fn inside a transaction. The transaction is rolled back when
// fn returns an error or panics and committed otherwise.
func (d *DB) WithTx(ctx context.Context, fn func(q Querier) error) (err error) {
	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			d.logger.Error(ctx, "transaction rollback failed", logger.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// observe records the latency and outcome of one store operation.
// ErrNotFound is a normal outcome, not a storage failure.
func observe(op string, start time.Time, errp *error) {
	err := *errp
	if errors.Is(err, ErrNotFound) {
		err = nil
	}
	metrics.RecordStorageQuery(op, float64(time.Since(start).Microseconds())/1000, err)
}
