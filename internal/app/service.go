// Package service owns the storage handle and the HTTP API built on it.
package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/okian/restaurants/internal/adapters/http/api"
	"github.com/okian/restaurants/internal/adapters/repository"
	"github.com/okian/restaurants/pkg/logger"
	"github.com/okian/restaurants/pkg/metrics"
)

// ErrNotStarted is returned when routes are registered before Start.
var ErrNotStarted = errors.New("service not started")

// Service wires the database, the stores and the HTTP API.
type Service struct {
	mu sync.RWMutex

	// Core components
	db          *repository.DB
	restaurants *repository.Restaurants
	menu        *repository.MenuItems
	server      *api.Server

	// Configuration
	driver          string
	dsn             string
	maxOpenConns    int
	maxIdleConns    int
	connMaxLifetime time.Duration
	migrate         bool
	statsInterval   time.Duration

	// State
	started bool
	stopCh  chan struct{}
	wg      sync.WaitGroup

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDatabase sets the driver and DSN of the database.
func WithDatabase(driver, dsn string) Option {
	return func(s *Service) {
		s.driver = driver
		s.dsn = dsn
	}
}

// WithPool sets the connection pool limits. Ignored for sqlite, which
// always uses a single connection.
func WithPool(maxOpen, maxIdle int, maxLifetime time.Duration) Option {
	return func(s *Service) {
		if maxOpen > 0 {
			s.maxOpenConns = maxOpen
		}
		if maxIdle >= 0 {
			s.maxIdleConns = maxIdle
		}
		if maxLifetime >= 0 {
			s.connMaxLifetime = maxLifetime
		}
	}
}

// WithMigrate controls whether the schema is created on start.
func WithMigrate(enabled bool) Option {
	return func(s *Service) {
		s.migrate = enabled
	}
}

// WithStatsInterval sets how often connection pool gauges are refreshed.
func WithStatsInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.statsInterval = d
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		driver:        string(repository.SQLite),
		dsn:           "restaurants.db",
		maxOpenConns:  10,
		maxIdleConns:  2,
		migrate:       true,
		statsInterval: 5 * time.Second,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start connects to the database, applies the schema when enabled and
// builds the API. A connection failure is returned wrapping
// repository.ErrConnect.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting restaurant service...", logger.String("driver", s.driver))

	db, err := repository.Open(ctx, s.driver, s.dsn,
		repository.WithMaxOpenConns(s.maxOpenConns),
		repository.WithMaxIdleConns(s.maxIdleConns),
		repository.WithConnMaxLifetime(s.connMaxLifetime),
		repository.WithLogger(s.logger),
	)
	if err != nil {
		return err
	}

	if s.migrate {
		if err := db.Migrate(ctx); err != nil {
			_ = db.Close()
			return err
		}
	}

	s.db = db
	s.restaurants = repository.NewRestaurants(db)
	s.menu = repository.NewMenuItems(db)
	s.server = api.NewServer(s.restaurants, s.menu, db)
	s.stopCh = make(chan struct{})

	s.wg.Add(1)
	go s.poolStatsLoop()

	s.started = true
	s.logger.Info(ctx, "restaurant service started", logger.Bool("migrate", s.migrate))

	return nil
}

// Register attaches the API routes to mux.
func (s *Service) Register(ctx context.Context, mux *http.ServeMux) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return ErrNotStarted
	}
	s.server.Register(ctx, mux)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	stopCh, db := s.stopCh, s.db
	s.mu.Unlock()

	ctx := context.Background()
	s.logger.Info(ctx, "stopping restaurant service...")

	// The stats loop takes the read lock, so it is stopped outside of mu.
	close(stopCh)
	s.wg.Wait()

	if err := db.Close(); err != nil {
		s.logger.Error(ctx, "closing database failed", logger.Error(err))
	}

	s.logger.Info(ctx, "restaurant service stopped")
}

// DB returns the storage handle, nil before Start.
func (s *Service) DB() *repository.DB {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db
}

// poolStatsLoop refreshes the connection pool gauges until Stop.
func (s *Service) poolStatsLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.GetStats()
		}
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started": s.started,
		"driver":  s.driver,
		"migrate": s.migrate,
	}

	if s.started {
		pool := s.db.Stats()
		stats["openConnections"] = pool.OpenConnections
		stats["inUseConnections"] = pool.InUse
		stats["idleConnections"] = pool.Idle
		stats["maxOpenConnections"] = pool.MaxOpenConnections

		metrics.UpdateDBConnections(pool.OpenConnections, pool.InUse, pool.Idle)
	}

	return stats
}
