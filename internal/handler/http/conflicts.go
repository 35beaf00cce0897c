package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/crm-deal-sync/internal/utils"
	"github.com/MKhiriev/crm-deal-sync/models"
)

const defaultConflictListLimit = 100

func (h *Handler) listConflicts(w http.ResponseWriter, r *http.Request) {
	limit, err := uintQuery(r, "limit", defaultConflictListLimit)
	if err != nil {
		writeError(w, r, err, "error listing conflicts")
		return
	}
	offset, err := uintQuery(r, "offset", 0)
	if err != nil {
		writeError(w, r, err, "error listing conflicts")
		return
	}

	conflicts, err := h.services.Conflicts.ListConflicts(r.Context(), limit, offset)
	if err != nil {
		writeError(w, r, err, "error listing conflicts")
		return
	}

	utils.WriteJSON(w, models.ConflictListResponse{Conflicts: conflicts, Length: len(conflicts)}, http.StatusOK)
}

func (h *Handler) getConflictLog(w http.ResponseWriter, r *http.Request) {
	entries, err := h.services.Conflicts.ConflictLog(r.Context(), chi.URLParam(r, "remoteID"))
	if err != nil {
		writeError(w, r, err, "error reading conflict log")
		return
	}

	utils.WriteJSON(w, entries, http.StatusOK)
}

func (h *Handler) resolveConflict(w http.ResponseWriter, r *http.Request) {
	var req models.ResolveConflictRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, "invalid conflict resolution request")
		return
	}

	status, err := h.services.Conflicts.ResolveConflict(r.Context(), chi.URLParam(r, "remoteID"), req.ConflictOverride)
	if err != nil {
		writeError(w, r, err, "error resolving conflict")
		return
	}

	utils.WriteJSON(w, status, http.StatusOK)
}
