package handler

import (
	"github.com/MKhiriev/crm-deal-sync/internal/config"
	"github.com/MKhiriev/crm-deal-sync/internal/handler/grpc"
	"github.com/MKhiriev/crm-deal-sync/internal/handler/http"
	"github.com/MKhiriev/crm-deal-sync/internal/logger"
	"github.com/MKhiriev/crm-deal-sync/internal/service"
	"github.com/MKhiriev/crm-deal-sync/internal/workers"
)

type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

func NewHandlers(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, cfg, logger)
	}
	if cfg.Server.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(services, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}

// HealthProber returns the prober the health worker should drive. With a
// gRPC transport the probe also refreshes the published serving status.
func (h *Handlers) HealthProber(services *service.Services) workers.HealthProber {
	if h.GRPC != nil {
		return h.GRPC
	}
	return services.Health
}
