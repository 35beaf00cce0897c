package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/crm-deal-sync/internal/logger"
	"github.com/MKhiriev/crm-deal-sync/internal/utils"
)

// auth is an HTTP middleware that enforces bearer JWT authentication of
// operators.
//
// It extracts the token from the "Authorization" header, validates it via
// [service.OperatorAuthService.ParseToken] and stores the operator name in
// the request context under [utils.OperatorCtxKey]. When the guard is
// disabled in configuration the request passes through untouched.
//
// Requests are rejected with 401 Unauthorized when the header is missing,
// is not a bearer header, or carries an invalid or expired token.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.authRequired {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, ErrInvalidAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.OperatorAuth.ParseToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("operator token rejected")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		log.Debug().Str("operator", token.Operator).Msg("operator authenticated")
		ctx = context.WithValue(ctx, utils.OperatorCtxKey, token.Operator)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
