package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/crm-deal-sync/internal/adapter"
	"github.com/MKhiriev/crm-deal-sync/internal/config"
	"github.com/MKhiriev/crm-deal-sync/internal/logger"
	"github.com/MKhiriev/crm-deal-sync/internal/metrics"
	"github.com/MKhiriev/crm-deal-sync/internal/store"
	"github.com/MKhiriev/crm-deal-sync/models"
)

// Health thresholds.
const (
	pingTimeout            = 5 * time.Second
	rateLimitHeadroom      = 0.10
	recordErrorRatio       = 0.05
	defaultFreshnessWindow = 24 * time.Hour
)

type healthMonitor struct {
	tokens   TokenManager
	crm      adapter.CRMAdapter
	statuses store.RecordStatusRepository
	sessions store.SessionRepository

	account   string
	freshness map[models.SyncKind]time.Duration

	now    func() time.Time
	logger *logger.Logger
}

// NewHealthMonitor builds the read-only health checker. It never forces a
// token refresh and never writes to the store.
func NewHealthMonitor(tokens TokenManager, crm adapter.CRMAdapter, storages *store.Storages, cfg config.StructuredConfig, log *logger.Logger) HealthMonitor {
	incremental := defaultFreshnessWindow
	if cfg.Workers.IncrementalSyncInterval > 0 {
		incremental = 3 * cfg.Workers.IncrementalSyncInterval
	}

	return &healthMonitor{
		tokens:   tokens,
		crm:      crm,
		statuses: storages.RecordStatus,
		sessions: storages.Sessions,
		account:  cfg.Auth.Account,
		freshness: map[models.SyncKind]time.Duration{
			models.SyncKindFull:        7 * defaultFreshnessWindow,
			models.SyncKindIncremental: incremental,
		},
		now:    time.Now,
		logger: log.Component("health"),
	}
}

func (h *healthMonitor) Check(ctx context.Context) models.HealthReport {
	report := models.HealthReport{
		CheckedAt: h.now().UTC(),
		LastSyncs: make(map[models.SyncKind]*time.Time),
	}

	report.Checks = append(report.Checks,
		h.checkToken(ctx),
		h.checkConnectivity(ctx),
		h.checkRateLimit(),
	)

	counts, recordCheck := h.checkRecords(ctx)
	report.Counts = counts
	report.Checks = append(report.Checks, recordCheck, h.checkFreshness(ctx, report.LastSyncs))

	report.Status = overallStatus(report.Checks)
	for _, c := range report.Checks {
		metrics.SetHealthCheck(c.Name, string(c.Status))
	}
	metrics.SetHealthCheck("overall", string(report.Status))

	if report.Status != models.Healthy {
		h.logger.Warn().Str("status", string(report.Status)).Interface("checks", report.Checks).Msg("health degraded")
	}
	return report
}

func (h *healthMonitor) checkToken(ctx context.Context) models.HealthCheck {
	check := models.HealthCheck{Name: models.CheckToken, Status: models.Healthy}

	cred, err := h.tokens.Credential(ctx, h.account)
	switch {
	case errors.Is(err, store.ErrCredentialNotFound):
		check.Status, check.Message = models.Unhealthy, "no credential stored"
	case err != nil:
		check.Status, check.Message = models.Unhealthy, err.Error()
	case !cred.ExpiresAt.After(h.now()):
		if cred.RefreshToken == "" {
			check.Status, check.Message = models.Unhealthy, "access token expired and no refresh token stored"
		} else {
			check.Status, check.Message = models.Degraded, "access token expired, refresh pending"
		}
	default:
		check.Message = fmt.Sprintf("valid until %s", cred.ExpiresAt.UTC().Format(time.RFC3339))
	}
	return check
}

func (h *healthMonitor) checkConnectivity(ctx context.Context) models.HealthCheck {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	// the ping carries the stored token; a rejection proves the remote is
	// reachable and leaves the refresh to the next sync
	err := h.crm.Ping(ctx)
	switch {
	case errors.Is(err, adapter.ErrUnauthorized):
		return models.HealthCheck{Name: models.CheckConnectivity, Status: models.Degraded, Message: "stored access token rejected: " + err.Error()}
	case err != nil:
		return models.HealthCheck{Name: models.CheckConnectivity, Status: models.Unhealthy, Message: err.Error()}
	}
	return models.HealthCheck{Name: models.CheckConnectivity, Status: models.Healthy}
}

func (h *healthMonitor) checkRateLimit() models.HealthCheck {
	check := models.HealthCheck{Name: models.CheckRateLimit, Status: models.Healthy}

	state := h.crm.RateLimit()
	if !state.Known || state.Limit <= 0 {
		check.Message = "no quota observed yet"
		return check
	}

	check.Message = fmt.Sprintf("%d of %d requests remaining", state.Remaining, state.Limit)
	if float64(state.Remaining) < rateLimitHeadroom*float64(state.Limit) {
		check.Status = models.Degraded
	}
	return check
}

func (h *healthMonitor) checkRecords(ctx context.Context) (models.RecordStatusCounts, models.HealthCheck) {
	check := models.HealthCheck{Name: models.CheckRecordErrors, Status: models.Healthy}

	counts, err := h.statuses.CountRecordStatuses(ctx)
	if err != nil {
		check.Status, check.Message = models.Degraded, err.Error()
		return counts, check
	}
	if counts.Total == 0 {
		return counts, check
	}

	ratio := float64(counts.Error+counts.Conflict) / float64(counts.Total)
	check.Message = fmt.Sprintf("%d errors, %d conflicts of %d records", counts.Error, counts.Conflict, counts.Total)
	if ratio > recordErrorRatio {
		check.Status = models.Degraded
	}
	return counts, check
}

func (h *healthMonitor) checkFreshness(ctx context.Context, last map[models.SyncKind]*time.Time) models.HealthCheck {
	check := models.HealthCheck{Name: models.CheckFreshness, Status: models.Healthy}
	now := h.now()

	var stale []string
	for _, kind := range []models.SyncKind{
		models.SyncKindFull,
		models.SyncKindIncremental,
		models.SyncKindMassUpdate,
		models.SyncKindBulkWrite,
	} {
		// bulk kinds are reported without a staleness threshold
		window, tracked := h.freshness[kind]

		s, err := h.sessions.LastCompletedSession(ctx, kind)
		if err != nil || s.CompletedAt == nil {
			last[kind] = nil
			if tracked {
				stale = append(stale, fmt.Sprintf("no completed %s sync", kind))
			}
			continue
		}
		last[kind] = s.CompletedAt
		if age := now.Sub(*s.CompletedAt); tracked && age > window {
			stale = append(stale, fmt.Sprintf("last %s sync %s ago", kind, age.Round(time.Second)))
		}
	}

	if len(stale) > 0 {
		check.Status = models.Degraded
		check.Message = fmt.Sprint(stale)
	}
	return check
}

// overallStatus is unhealthy when authentication or connectivity fails,
// degraded when any other check is not healthy.
func overallStatus(checks []models.HealthCheck) models.HealthStatus {
	status := models.Healthy
	for _, c := range checks {
		if c.Status == models.Healthy {
			continue
		}
		if c.Name == models.CheckToken || c.Name == models.CheckConnectivity {
			if c.Status == models.Unhealthy {
				return models.Unhealthy
			}
		}
		status = models.Degraded
	}
	return status
}
