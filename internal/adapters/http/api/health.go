package api

import (
	"context"
	"net/http"
	"time"

	"github.com/okian/restaurants/pkg/logger"
)

const healthTimeout = 2 * time.Second

// Pinger reports whether the database can be reached.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// HandleHealth handles GET /healthz by pinging the database.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		logger.Get().Warn(ctx, "health check failed", logger.Error(err))
		writeResponse(w, respond(http.StatusServiceUnavailable, statusBody{Status: "unavailable"}))
		return
	}
	writeResponse(w, respond(http.StatusOK, statusBody{Status: "ok"}))
}
