package controller

import (
	"net/http"

	"github.com/cassiomorais/connector-service/internal/domain/connector"
)

type HealthController struct {
	connectors connector.Connectors
}

func NewHealthController(connectors connector.Connectors) *HealthController {
	return &HealthController{connectors: connectors}
}

func (h *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HealthController) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// Readiness fails while any supported connector has no base URL.
func (h *HealthController) Readiness(w http.ResponseWriter, r *http.Request) {
	for _, id := range connector.Supported() {
		if h.connectors.Params(id).BaseURL == "" {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"reason": id.String() + " has no base_url",
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
