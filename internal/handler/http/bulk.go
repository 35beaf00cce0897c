package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/crm-deal-sync/internal/utils"
	"github.com/MKhiriev/crm-deal-sync/models"
)

// submitSmallBatch answers with the per-record results. A batch where some
// records failed is still a 200; callers inspect BatchResult.Failed.
func (h *Handler) submitSmallBatch(w http.ResponseWriter, r *http.Request) {
	var req models.SmallBatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, "invalid small batch request")
		return
	}

	result, err := h.services.Bulk.SubmitSmallBatch(r.Context(), req.Records)
	if err != nil {
		writeError(w, r, err, "error submitting small batch")
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) submitMassUpdate(w http.ResponseWriter, r *http.Request) {
	var req models.MassUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, "invalid mass update request")
		return
	}

	sessionID, err := h.services.Bulk.SubmitMassUpdate(r.Context(), req)
	if err != nil {
		writeError(w, r, err, "error submitting mass update")
		return
	}

	utils.WriteJSON(w, models.StartSessionResponse{SessionID: sessionID}, http.StatusAccepted)
}

func (h *Handler) submitBulkWrite(w http.ResponseWriter, r *http.Request) {
	var req models.BulkWriteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err, "invalid bulk write request")
		return
	}

	sessionID, err := h.services.Bulk.SubmitBulkWrite(r.Context(), req)
	if err != nil {
		writeError(w, r, err, "error submitting bulk write")
		return
	}

	utils.WriteJSON(w, models.StartSessionResponse{SessionID: sessionID}, http.StatusAccepted)
}

func (h *Handler) getBulkStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.services.Bulk.GetBulkStatus(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, r, err, "error getting bulk status")
		return
	}

	utils.WriteJSON(w, status, http.StatusOK)
}

// checkJobStatus polls the remote job once instead of waiting for the
// background poller.
func (h *Handler) checkJobStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.services.Bulk.CheckJobStatus(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, r, err, "error checking remote job")
		return
	}

	utils.WriteJSON(w, status, http.StatusOK)
}
