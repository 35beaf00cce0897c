package service

import (
	"context"
	"time"

	"github.com/MKhiriev/crm-deal-sync/internal/adapter"
	"github.com/MKhiriev/crm-deal-sync/internal/config"
	"github.com/MKhiriev/crm-deal-sync/internal/logger"
	"github.com/MKhiriev/crm-deal-sync/internal/store"
	"github.com/MKhiriev/crm-deal-sync/models"
)

type Services struct {
	Tokens       TokenManager
	TokenSaver   *TokenSaveAdapter
	Orchestrator SyncOrchestrator
	Conflicts    ConflictService
	Bulk         BulkManager
	Health       HealthMonitor
	AppInfo      AppInfoService
	OperatorAuth OperatorAuthService
}

// NewServices wires the services around one CRM adapter. tokens must be the
// provider the adapter's client was built with.
func NewServices(
	storages *store.Storages,
	crm adapter.CRMAdapter,
	tokens TokenManager,
	cfg config.StructuredConfig,
	buildInfo models.AppBuildInfo,
	logger *logger.Logger,
) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, err
	}

	tracker := newSessionTracker(storages.Sessions, time.Now, logger)
	records := newKeyedMutex()

	bulk := newBulkManager(crm, storages, tracker, records, cfg.Bulk, logger)
	orchestrator := newSyncOrchestrator(
		crm,
		storages,
		NewConflictResolver(cfg.Sync),
		bulk,
		bulk,
		tracker,
		records,
		cfg.Sync,
		logger,
	)

	return &Services{
		Tokens:       tokens,
		TokenSaver:   NewTokenSaveAdapter(tokens, cfg.App.FallbackAccount),
		Orchestrator: orchestrator,
		Conflicts:    newConflictService(crm, storages, records, logger),
		Bulk:         NewBulkValidationService().Wrap(bulk),
		Health:       NewHealthMonitor(tokens, crm, storages, cfg, logger),
		AppInfo:      appInfo,
		OperatorAuth: NewOperatorAuthService(cfg.App, logger),
	}, nil
}

// Shutdown stops running sessions, then bulk pollers.
func (s *Services) Shutdown(ctx context.Context) error {
	return s.Orchestrator.Shutdown(ctx)
}
