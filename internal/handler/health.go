package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// HealthChecker is satisfied by the repository and cache.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler manages health check endpoints.
type HealthHandler struct {
	db    HealthChecker
	cache HealthChecker
}

// NewHealthHandler creates a new HealthHandler.
// Pass nil for db or cache if they are not yet initialized.
func NewHealthHandler(db, cache HealthChecker) *HealthHandler {
	return &HealthHandler{
		db:    db,
		cache: cache,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Healthz is the liveness probe. It answers 200 whenever the process
// is serving, with no dependency checks.
//
// GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Readyz is the readiness probe. Postgres and Redis are both pinged;
// a failure in either reports 503 so the pod drops out of rotation.
//
// GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	healthy := true

	check := func(name string, dep HealthChecker) {
		if dep == nil {
			checks[name] = "not configured"
			return
		}
		if err := dep.Ping(ctx); err != nil {
			checks[name] = "error: " + err.Error()
			healthy = false
			return
		}
		checks[name] = "ok"
	}

	check("postgres", h.db)
	check("redis", h.cache)

	status := "ok"
	statusCode := http.StatusOK
	if !healthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(HealthResponse{
		Status: status,
		Checks: checks,
	})
}
