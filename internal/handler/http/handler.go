package http

import (
	"time"

	"github.com/MKhiriev/crm-deal-sync/internal/config"
	"github.com/MKhiriev/crm-deal-sync/internal/logger"
	"github.com/MKhiriev/crm-deal-sync/internal/service"
)

type Handler struct {
	services *service.Services

	// authRequired enables the bearer-token guard on /api routes.
	authRequired   bool
	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Bool("auth_required", cfg.App.APITokenSignKey != "").Msg("http handler created")
	return &Handler{
		services:       services,
		authRequired:   cfg.App.APITokenSignKey != "",
		requestTimeout: cfg.Server.RequestTimeout,
		logger:         logger,
	}
}
