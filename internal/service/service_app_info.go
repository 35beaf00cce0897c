package service

import (
	"context"

	"github.com/MKhiriev/crm-deal-sync/internal/config"
	"github.com/MKhiriev/crm-deal-sync/internal/logger"
	"github.com/MKhiriev/crm-deal-sync/models"
)

type appInfoService struct {
	appVersion string
	buildInfo  models.AppBuildInfo

	logger *logger.Logger
}

// NewAppInfoService exposes the configured version and the build metadata
// linked into the binary.
func NewAppInfoService(cfg config.App, buildInfo models.AppBuildInfo, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion: cfg.Version,
		buildInfo:  buildInfo,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

func (s *appInfoService) GetBuildInfo(ctx context.Context) models.AppBuildInfo {
	return s.buildInfo
}
