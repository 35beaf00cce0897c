package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/MKhiriev/crm-deal-sync/internal/utils"
)

const traceIDHeader = "X-Trace-ID"

// withTraceID attaches a request-scoped logger carrying trace_id to the
// context. An incoming X-Trace-ID is reused, otherwise a new one is minted.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})
		ctx := context.WithValue(r.Context(), utils.TraceIDCtxKey, traceID)
		r = r.WithContext(l.WithContext(ctx))

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r)
	})
}
