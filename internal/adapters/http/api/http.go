// Package api exposes the restaurant and menu item resources over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/restaurants/internal/adapters/repository"
	"github.com/okian/restaurants/pkg/metrics"
)

// Server wires HTTP routes for the business API.
type Server struct {
	dispatcher    *Dispatcher
	healthHandler *HealthHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(restaurants repository.RestaurantStore, menu repository.MenuItemStore, db Pinger) *Server {
	return &Server{
		dispatcher:    NewDispatcher(NewRestaurantHandler(restaurants), NewMenuHandler(menu)),
		healthHandler: NewHealthHandler(db),
	}
}

// Register attaches all HTTP routes to mux. The dispatcher owns every path
// that no operational route claims, so it also answers unknown paths.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("GET /healthz", MetricsMiddleware(http.HandlerFunc(s.healthHandler.HandleHealth), "healthz"))
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	mux.Handle("/", MetricsMiddleware(s.dispatcher, "restaurants"))
}
