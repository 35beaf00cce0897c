package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/crm-deal-sync/internal/logger"
	"github.com/MKhiriev/crm-deal-sync/internal/utils"
	"github.com/MKhiriev/crm-deal-sync/models"
)

type saveTokenResponse struct {
	AccountIdentity string `json:"account_identity"`
}

// saveToken stores a CRM OAuth credential. The account comes from the
// path when present; the legacy route without it lets the token saver
// work the identity out of the payload.
func (h *Handler) saveToken(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var payload models.TokenPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, r, err, "invalid token payload")
		return
	}

	account, err := h.services.TokenSaver.Save(r.Context(), payload, chi.URLParam(r, "account"))
	if err != nil {
		writeError(w, r, err, "error saving token")
		return
	}

	log.Info().Str("account", account).Msg("credential saved")
	utils.WriteJSON(w, saveTokenResponse{AccountIdentity: account}, http.StatusOK)
}

func (h *Handler) revokeToken(w http.ResponseWriter, r *http.Request) {
	if err := h.services.Tokens.Revoke(r.Context(), chi.URLParam(r, "account")); err != nil {
		writeError(w, r, err, "error revoking token")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
