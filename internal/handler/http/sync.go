package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/crm-deal-sync/internal/utils"
	"github.com/MKhiriev/crm-deal-sync/models"
)

const defaultSessionListLimit = 50

func (h *Handler) startFullSync(w http.ResponseWriter, r *http.Request) {
	sessionID, err := h.services.Orchestrator.StartFullSync(r.Context())
	if err != nil {
		writeError(w, r, err, "error starting full sync")
		return
	}

	utils.WriteJSON(w, models.StartSessionResponse{SessionID: sessionID}, http.StatusAccepted)
}

func (h *Handler) startIncrementalSync(w http.ResponseWriter, r *http.Request) {
	sessionID, err := h.services.Orchestrator.StartIncrementalSync(r.Context())
	if err != nil {
		writeError(w, r, err, "error starting incremental sync")
		return
	}

	utils.WriteJSON(w, models.StartSessionResponse{SessionID: sessionID}, http.StatusAccepted)
}

// pushLocalChanges answers 204 when no local deal changed since the last
// push.
func (h *Handler) pushLocalChanges(w http.ResponseWriter, r *http.Request) {
	sessionID, err := h.services.Orchestrator.PushLocalChanges(r.Context())
	if err != nil {
		writeError(w, r, err, "error pushing local changes")
		return
	}
	if sessionID == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	utils.WriteJSON(w, models.StartSessionResponse{SessionID: sessionID}, http.StatusAccepted)
}

func (h *Handler) refreshRecord(w http.ResponseWriter, r *http.Request) {
	status, err := h.services.Orchestrator.RefreshRecord(r.Context(), chi.URLParam(r, "remoteID"))
	if err != nil {
		writeError(w, r, err, "error refreshing record")
		return
	}

	utils.WriteJSON(w, status, http.StatusOK)
}

func (h *Handler) getSessionStatus(w http.ResponseWriter, r *http.Request) {
	session, err := h.services.Orchestrator.GetSessionStatus(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, r, err, "error getting session status")
		return
	}

	utils.WriteJSON(w, session, http.StatusOK)
}

func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	limit, err := uintQuery(r, "limit", defaultSessionListLimit)
	if err != nil {
		writeError(w, r, err, "error listing sessions")
		return
	}

	kind := models.SyncKind(r.URL.Query().Get("kind"))
	if kind != "" && !kind.Valid() {
		writeError(w, r, ErrInvalidQueryParam, "unknown session kind")
		return
	}
	status := models.SessionStatus(r.URL.Query().Get("status"))

	sessions, err := h.services.Orchestrator.ListSessions(r.Context(), kind, status, limit)
	if err != nil {
		writeError(w, r, err, "error listing sessions")
		return
	}

	utils.WriteJSON(w, models.SessionListResponse{Sessions: sessions, Length: len(sessions)}, http.StatusOK)
}

func (h *Handler) getSessionLog(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	entries, err := h.services.Orchestrator.SessionLog(r.Context(), sessionID)
	if err != nil {
		writeError(w, r, err, "error reading session log")
		return
	}

	utils.WriteJSON(w, models.SessionLogResponse{SessionID: sessionID, Entries: entries}, http.StatusOK)
}

func (h *Handler) cancelSession(w http.ResponseWriter, r *http.Request) {
	if err := h.services.Orchestrator.CancelSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		writeError(w, r, err, "error cancelling session")
		return
	}

	w.WriteHeader(http.StatusAccepted)
}
