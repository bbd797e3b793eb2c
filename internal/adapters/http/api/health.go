// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// HealthHandler handles health check requests.
type HealthHandler struct{}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// statusResponse is the liveness payload for /healthz.
type statusResponse struct {
	Status string `json:"status"`
}

// HandleHealth handles GET /healthz requests. It reports process liveness
// only; Prometheus metrics are served separately on /metrics.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}
