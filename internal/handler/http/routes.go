package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const compressionLevel = 5

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)
	router.Use(middleware.Compress(compressionLevel, "application/json", "text/plain"))
	router.Use(withGZipRequest)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version", h.getServerVersion)
		r.Get("/api/build-info", h.getBuildInfo)
		r.Get("/api/health", h.health)
		r.Handle("/metrics", promhttp.Handler())
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/auth/token", h.saveToken)
		r.Post("/api/auth/accounts/{account}/token", h.saveToken)
		r.Delete("/api/auth/accounts/{account}/token", h.revokeToken)

		r.Post("/api/sync/full", h.startFullSync)
		r.Post("/api/sync/incremental", h.startIncrementalSync)
		r.Post("/api/sync/push", h.pushLocalChanges)
		r.Post("/api/sync/records/{remoteID}/refresh", h.refreshRecord)
		r.Get("/api/sync/sessions", h.listSessions)
		r.Get("/api/sync/sessions/{sessionID}", h.getSessionStatus)
		r.Get("/api/sync/sessions/{sessionID}/log", h.getSessionLog)
		r.Post("/api/sync/sessions/{sessionID}/cancel", h.cancelSession)

		r.Post("/api/bulk/batch", h.submitSmallBatch)
		r.Post("/api/bulk/mass-update", h.submitMassUpdate)
		r.Post("/api/bulk/write", h.submitBulkWrite)
		r.Get("/api/bulk/{sessionID}", h.getBulkStatus)
		r.Post("/api/bulk/{sessionID}/check", h.checkJobStatus)

		r.Get("/api/conflicts", h.listConflicts)
		r.Get("/api/conflicts/{remoteID}/log", h.getConflictLog)
		r.Post("/api/conflicts/{remoteID}/resolve", h.resolveConflict)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
