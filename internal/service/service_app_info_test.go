package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/crm-deal-sync/internal/config"
	"github.com/MKhiriev/crm-deal-sync/internal/logger"
	"github.com/MKhiriev/crm-deal-sync/models"
)

var testBuildInfo = models.NewAppBuildInfo("1.0.0", "2026-05-01", "abc123")

// ─────────────────────────────────────────────
// NewAppInfoService
// ─────────────────────────────────────────────

func TestNewAppInfoService_Success(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "1.0.0"}, testBuildInfo, logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, svc)
}

func TestNewAppInfoService_EmptyVersion_ReturnsError(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: ""}, testBuildInfo, logger.Nop())

	assert.Nil(t, svc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVersionIsNotSpecified))
}

// ─────────────────────────────────────────────
// GetAppVersion / GetBuildInfo
// ─────────────────────────────────────────────

func TestGetAppVersion_ReturnsConfiguredVersion(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "3.1.4"}, testBuildInfo, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "3.1.4", svc.GetAppVersion(context.Background()))
}

func TestGetAppVersion_DifferentInstances_IndependentVersions(t *testing.T) {
	svc1, err := NewAppInfoService(config.App{Version: "1.0.0"}, testBuildInfo, logger.Nop())
	require.NoError(t, err)

	svc2, err := NewAppInfoService(config.App{Version: "2.0.0"}, testBuildInfo, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", svc1.GetAppVersion(context.Background()))
	assert.Equal(t, "2.0.0", svc2.GetAppVersion(context.Background()))
}

func TestGetAppVersion_CancelledContext_StillReturnsVersion(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "1.0.0"}, testBuildInfo, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, "1.0.0", svc.GetAppVersion(ctx))
}

func TestGetBuildInfo(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "1.0.0"}, testBuildInfo, logger.Nop())
	require.NoError(t, err)

	info := svc.GetBuildInfo(context.Background())

	assert.Equal(t, "1.0.0", info.BuildVersion())
	assert.Equal(t, "2026-05-01", info.BuildDate())
	assert.Equal(t, "abc123", info.BuildCommit())
}
