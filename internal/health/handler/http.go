// Package handler exposes the health check endpoint.
package handler

import (
	"context"
	"net/http"
	"time"

	"notes-service/internal/server/respond"
)

// Pinger reports whether a dependency is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler serves GET /healthz. It reports 503 when the database is
// unreachable so load balancers stop routing to the instance.
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler returns a HealthHandler over the given database handle.
// db may be nil; then only liveness is reported.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check handles GET /healthz.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			respond.JSON(w, http.StatusServiceUnavailable, map[string]any{
				"status": "unhealthy",
				"error":  "database unreachable",
			})
			return
		}
	}
	respond.JSON(w, http.StatusOK, map[string]any{"status": "ok"})
}
