package http

import (
	"net/http"

	"github.com/MKhiriev/crm-deal-sync/internal/utils"
	"github.com/MKhiriev/crm-deal-sync/models"
)

// health answers 200 for healthy and degraded reports and 503 for
// unhealthy ones, so load balancers only drop a broken instance.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	report := h.services.Health.Check(r.Context())

	status := http.StatusOK
	if report.Status == models.Unhealthy {
		status = http.StatusServiceUnavailable
	}
	utils.WriteJSON(w, report, status)
}
