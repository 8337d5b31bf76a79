// Package metrics provides Prometheus metrics for the restaurant API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByKind        *prometheus.CounterVec

	// Storage
	storageQueries       *prometheus.CounterVec
	storageQueryDuration *prometheus.HistogramVec
	dbOpenConnections    prometheus.Gauge
	dbInUseConnections   prometheus.Gauge
	dbIdleConnections    prometheus.Gauge

	// Domain
	restaurantsCreated   prometheus.Counter
	menuItemsCreated     prometheus.Counter
	restaurantsDeleted   prometheus.Counter
	menuItemsCascadeGone prometheus.Counter

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// Configure rebuilds the global manager on a fresh registry with opts
// applied on top of the defaults. It must run before metrics are served;
// collectors recorded earlier are dropped.
func Configure(opts ...Option) {
	registry := prometheus.NewRegistry()
	globalManager = NewManager(append(opts, WithPrometheusRegistry(registry))...)
	customRegistry = registry
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "resto",
		subsystem:        "api",
		histogramBuckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for all collectors
	auto := promauto.With(m.registry)
	if !m.enabled {
		// Collectors still exist so callers never nil-check; they are just not exported.
		auto = promauto.With(nil)
	}
	labels := prometheus.Labels(m.customLabels)

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("http_requests_total"),
		Help:        "Total number of HTTP requests by route, method and status code",
		ConstLabels: labels,
	}, []string{"route", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("http_request_duration_milliseconds"),
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"route", "method", "status_code"})

	m.errorsByKind = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("errors_total"),
		Help:        "Errors returned to clients by kind (validation, not_found, routing, storage, panic)",
		ConstLabels: labels,
	}, []string{"kind"})

	m.storageQueries = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("storage_queries_total"),
		Help:        "Storage statements executed by operation and outcome",
		ConstLabels: labels,
	}, []string{"operation", "outcome"})

	m.storageQueryDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("storage_query_duration_milliseconds"),
		Help:        "Storage statement latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"operation"})

	m.dbOpenConnections = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("db_open_connections"),
		Help:        "Open database connections",
		ConstLabels: labels,
	})

	m.dbInUseConnections = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("db_in_use_connections"),
		Help:        "Database connections currently in use",
		ConstLabels: labels,
	})

	m.dbIdleConnections = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("db_idle_connections"),
		Help:        "Idle database connections",
		ConstLabels: labels,
	})

	m.restaurantsCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("restaurants_created_total"),
		Help:        "Restaurants created",
		ConstLabels: labels,
	})

	m.menuItemsCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("menu_items_created_total"),
		Help:        "Menu items created",
		ConstLabels: labels,
	})

	m.restaurantsDeleted = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("restaurants_deleted_total"),
		Help:        "Restaurants deleted",
		ConstLabels: labels,
	})

	m.menuItemsCascadeGone = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("menu_items_cascade_deleted_total"),
		Help:        "Menu items removed by restaurant cascade deletes",
		ConstLabels: labels,
	})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_memory_usage_bytes"),
		Help:        "System memory usage in bytes",
		ConstLabels: labels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_goroutine_count"),
		Help:        "Number of goroutines",
		ConstLabels: labels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_gc_pause_time_milliseconds"),
		Help:        "GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: labels,
	})
}

// RecordHTTPRequest records a finished HTTP request and its duration.
func (m *Manager) RecordHTTPRequest(route, method, statusCode string, durationMs float64) {
	m.httpRequests.WithLabelValues(route, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(route, method, statusCode).Observe(durationMs)
}

// RecordError counts an error response by kind.
func (m *Manager) RecordError(kind string) {
	m.errorsByKind.WithLabelValues(kind).Inc()
}

// RecordStorageQuery records one storage statement.
func (m *Manager) RecordStorageQuery(operation string, durationMs float64, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.storageQueries.WithLabelValues(operation, outcome).Inc()
	m.storageQueryDuration.WithLabelValues(operation).Observe(durationMs)
}

// UpdateDBConnections sets the connection pool gauges.
func (m *Manager) UpdateDBConnections(open, inUse, idle int) {
	m.dbOpenConnections.Set(float64(open))
	m.dbInUseConnections.Set(float64(inUse))
	m.dbIdleConnections.Set(float64(idle))
}

// Package-level helpers operate on the global manager.

// RecordHTTPRequest records a finished HTTP request and its duration.
func RecordHTTPRequest(route, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(route, method, statusCode, durationMs)
}

// RecordError counts an error response by kind.
func RecordError(kind string) {
	globalManager.RecordError(kind)
}

// RecordStorageQuery records one storage statement.
func RecordStorageQuery(operation string, durationMs float64, err error) {
	globalManager.RecordStorageQuery(operation, durationMs, err)
}

// UpdateDBConnections sets the connection pool gauges.
func UpdateDBConnections(open, inUse, idle int) {
	globalManager.UpdateDBConnections(open, inUse, idle)
}

// RecordRestaurantCreated increments the restaurants created counter.
func RecordRestaurantCreated() {
	globalManager.restaurantsCreated.Inc()
}

// RecordMenuItemCreated increments the menu items created counter.
func RecordMenuItemCreated() {
	globalManager.menuItemsCreated.Inc()
}

// RecordRestaurantDeleted counts a restaurant delete and the menu items it took with it.
func RecordRestaurantDeleted(cascaded int64) {
	globalManager.restaurantsDeleted.Inc()
	if cascaded > 0 {
		globalManager.menuItemsCascadeGone.Add(float64(cascaded))
	}
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
