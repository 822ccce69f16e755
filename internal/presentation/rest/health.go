package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// CheckFunc probes one dependency. A nil error means the dependency is ready.
type CheckFunc func(ctx context.Context) error

// HealthHandler provides HTTP health check endpoints for the scoring service.
type HealthHandler struct {
	logger    *slog.Logger
	startTime time.Time
	checks    map[string]CheckFunc
}

// NewHealthHandler creates a new health check handler. The checks map names
// each dependency probed by the readiness endpoint.
func NewHealthHandler(logger *slog.Logger, checks map[string]CheckFunc) *HealthHandler {
	return &HealthHandler{
		logger:    logger,
		startTime: time.Now(),
		checks:    checks,
	}
}

// HealthResponse is the JSON response for health checks.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Uptime  string `json:"uptime"`
}

// ReadinessResponse is the JSON response for readiness checks.
type ReadinessResponse struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Checks  map[string]string `json:"checks"`
}

// RegisterRoutes registers health endpoints on the provided ServeMux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
}

// Healthz handles liveness probe requests.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:  "healthy",
		Service: "credit-scoring",
		Uptime:  time.Since(h.startTime).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// Readyz handles readiness probe requests. It runs every registered check
// and reports 503 when any dependency fails.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := "ready"
	code := http.StatusOK
	checks := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.Warn("readiness check failed",
				slog.String("check", name),
				slog.String("error", err.Error()),
			)
			checks[name] = err.Error()
			status = "not ready"
			code = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	resp := ReadinessResponse{
		Status:  status,
		Service: "credit-scoring",
		Checks:  checks,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(resp)
}
