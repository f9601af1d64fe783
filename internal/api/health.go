package api

import (
	"net/http"

	"github.com/thislife/planner/internal/api/respond"
	"github.com/thislife/planner/internal/store"
)

// HealthHandler reports service and store health.
type HealthHandler struct {
	store store.Store
}

func NewHealthHandler(s store.Store) *HealthHandler {
	return &HealthHandler{store: s}
}

// serviceIsHealthy is injected by the service binary from the background
// health monitor. Until something binds it the service reports healthy.
var serviceIsHealthy = func() bool { return true }

// BindServiceHealth injects the aggregated service health function.
func BindServiceHealth(f func() bool) { serviceIsHealthy = f }

// Check GET /api/health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if !serviceIsHealthy() {
		respond.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// CheckStore GET /api/health/db
func (h *HealthHandler) CheckStore(w http.ResponseWriter, r *http.Request) {
	if pinger, ok := h.store.(store.HealthPinger); ok {
		if err := pinger.HealthPing(r.Context()); err != nil {
			respond.WriteError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
