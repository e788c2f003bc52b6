package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/project-board/internal/adapters/http/dto"
	"github.com/jsamuelsen11/project-board/internal/platform/logging"
	"github.com/jsamuelsen11/project-board/internal/ports"
)

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	registry ports.HealthRegistry
}

// NewHealthHandler creates a new HealthHandler with the given health registry.
func NewHealthHandler(registry ports.HealthRegistry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// Liveness handles GET /health/live. The process is alive as long as it can
// answer, so this always returns 200.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dto.HealthResponse{Status: dto.HealthOK})
}

// Readiness handles GET /health/ready. It returns 200 when every registered
// component is healthy and 503 with the failing checks otherwise.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	resp, healthy := dto.ToHealthResponse(h.registry.CheckAll(r.Context()))
	if healthy {
		writeJSON(w, r, http.StatusOK, resp)
		return
	}

	logger := logging.FromContext(r.Context())
	for name, msg := range resp.Checks {
		if msg != dto.HealthOK {
			logger.WarnContext(r.Context(), "readiness check failed",
				slog.String("component", name),
				slog.String("error", msg),
			)
		}
	}
	writeJSON(w, r, http.StatusServiceUnavailable, resp)
}
