package http

import (
	"net/http"

	"github.com/MKhiriev/crm-deal-sync/internal/utils"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfo.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(serverVersion))
}

func (h *Handler) getBuildInfo(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.AppInfo.GetBuildInfo(r.Context()), http.StatusOK)
}
