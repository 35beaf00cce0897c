// Package grpc exposes the sync engine's health on the standard gRPC health
// checking protocol (grpc.health.v1).
package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/crm-deal-sync/internal/logger"
	"github.com/MKhiriev/crm-deal-sync/internal/service"
	"github.com/MKhiriev/crm-deal-sync/models"
)

// ServicePrefix names the per-check health services, e.g.
// "crmdealsync.token".
const ServicePrefix = "crmdealsync."

var checkNames = []string{
	models.CheckToken,
	models.CheckConnectivity,
	models.CheckRateLimit,
	models.CheckRecordErrors,
	models.CheckFreshness,
}

// Handler is the root gRPC transport handler.
//
// It keeps a grpc health server whose statuses follow the last report of
// the Health Monitor. The overall status is published under the empty
// service name; every check is published under [ServicePrefix] + name.
type Handler struct {
	services *service.Services
	health   *health.Server

	logger *logger.Logger
}

// NewHandler constructs a [Handler]. Until the first [Handler.Check] every
// service reports NOT_SERVING.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	h := &Handler{
		services: services,
		health:   health.NewServer(),
		logger:   logger.Component("grpc-health"),
	}
	h.health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	for _, name := range checkNames {
		h.health.SetServingStatus(ServicePrefix+name, healthpb.HealthCheckResponse_NOT_SERVING)
	}

	logger.Debug().Msg("gRPC handler created")
	return h
}

// Register attaches the health service to s.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
}

// Check runs the Health Monitor and publishes the result. Degraded counts as
// serving; only an unhealthy verdict takes the instance out.
func (h *Handler) Check(ctx context.Context) models.HealthReport {
	report := h.services.Health.Check(ctx)

	h.health.SetServingStatus("", servingStatus(report.Status))
	for _, check := range report.Checks {
		h.health.SetServingStatus(ServicePrefix+check.Name, servingStatus(check.Status))
	}

	h.logger.Debug().Str("status", string(report.Status)).Msg("health status published")
	return report
}

// Shutdown flips every service to NOT_SERVING so clients drain before the
// server stops.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}

func servingStatus(status models.HealthStatus) healthpb.HealthCheckResponse_ServingStatus {
	if status == models.Unhealthy {
		return healthpb.HealthCheckResponse_NOT_SERVING
	}
	return healthpb.HealthCheckResponse_SERVING
}
