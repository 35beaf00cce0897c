// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the sync engine's business logic: the token
// manager, the sync orchestrator, the conflict resolver, the bulk operation
// manager and the health monitor.
//
// Services talk to the remote CRM only through the adapter package and to
// the database only through the store repositories; both are injected as
// interfaces by the composition root.
package service

//go:generate mockgen -destination=../mock/service_mock.go -package=mock . TokenManager,SyncOrchestrator,ConflictService,BulkManager,HealthMonitor,AppInfoService,OperatorAuthService

import (
	"context"
	"time"

	"github.com/MKhiriev/crm-deal-sync/internal/adapter"
	"github.com/MKhiriev/crm-deal-sync/models"
)

// TokenManager owns the OAuth credential of every account identity.
type TokenManager interface {
	adapter.TokenProvider

	// SaveToken stores a freshly authorized credential for account.
	SaveToken(ctx context.Context, account string, payload models.TokenPayload) error

	// Revoke deletes the credential of account.
	Revoke(ctx context.Context, account string) error

	// Credential returns the stored credential without refreshing it.
	Credential(ctx context.Context, account string) (models.Credential, error)
}

// SyncOrchestrator runs full, incremental and push sessions.
type SyncOrchestrator interface {
	// StartFullSync creates a full session and runs it in the background.
	StartFullSync(ctx context.Context) (string, error)

	// StartIncrementalSync creates an incremental session starting at the
	// watermark of the last completed incremental session.
	StartIncrementalSync(ctx context.Context) (string, error)

	// PushLocalChanges sends locally modified deals to the remote side. It
	// returns an empty session id when there is nothing to push.
	PushLocalChanges(ctx context.Context) (string, error)

	// RefreshRecord re-reads one deal from the remote side and applies it.
	RefreshRecord(ctx context.Context, remoteID string) (models.RecordSyncStatus, error)

	GetSessionStatus(ctx context.Context, sessionID string) (models.SyncSession, error)
	ListSessions(ctx context.Context, kind models.SyncKind, status models.SessionStatus, limit uint64) ([]models.SyncSession, error)
	SessionLog(ctx context.Context, sessionID string) ([]models.SyncStatusLogEntry, error)

	// CancelSession requests cancellation. A running session stops at the
	// next page boundary; a pending one is cancelled at once.
	CancelSession(ctx context.Context, sessionID string) error

	// RecoverStaleSessions fails sync sessions left behind by a dead
	// process and re-attaches pollers to unfinished bulk jobs.
	RecoverStaleSessions(ctx context.Context) error

	// Shutdown waits for running sessions to stop.
	Shutdown(ctx context.Context) error
}

// ConflictResolver decides how a diverging local/remote pair is merged.
type ConflictResolver interface {
	Resolve(local, remote models.Deal, previousSync *models.RecordSyncStatus) models.ResolutionOutcome
}

// ConflictService exposes unresolved conflicts and applies overrides.
type ConflictService interface {
	ListConflicts(ctx context.Context, limit, offset uint64) ([]models.ConflictView, error)
	ResolveConflict(ctx context.Context, remoteID string, override models.ConflictOverride) (models.RecordSyncStatus, error)
	ConflictLog(ctx context.Context, remoteID string) ([]models.ConflictLogEntry, error)
}

// BulkManager runs small batches, mass updates and bulk writes.
type BulkManager interface {
	SubmitSmallBatch(ctx context.Context, updates []models.DealUpdate) (models.BatchResult, error)
	SubmitMassUpdate(ctx context.Context, req models.MassUpdateRequest) (string, error)
	SubmitBulkWrite(ctx context.Context, req models.BulkWriteRequest) (string, error)

	// CheckJobStatus polls the remote job of a bulk session once and
	// advances the session when the job reached a terminal state.
	CheckJobStatus(ctx context.Context, sessionID string) (models.BulkStatus, error)

	GetBulkStatus(ctx context.Context, sessionID string) (models.BulkStatus, error)

	// ResumePolling re-attaches a poller to an unfinished bulk session.
	ResumePolling(ctx context.Context, session models.SyncSession)

	// Shutdown stops every poller and waits for them to return. Their
	// sessions stay in progress and are picked up again by
	// [SyncOrchestrator.RecoverStaleSessions] on the next start.
	Shutdown(ctx context.Context) error
}

// DealPusher sends locally modified deals to the remote side. cutoff is the
// instant the deals were read at; it becomes the watermark of the next push
// once the returned session completes without failures.
type DealPusher interface {
	PushDeals(ctx context.Context, deals []models.Deal, cutoff time.Time) (string, error)
}

// BulkManagerWrapper defines middleware composition for BulkManager.
// Implementations wrap an existing BulkManager to add behavior such as
// logging or validating.
type BulkManagerWrapper interface {
	Wrap(BulkManager) BulkManager // returns a decorated BulkManager applying additional behavior
}

// HealthMonitor builds read-only health reports.
type HealthMonitor interface {
	Check(ctx context.Context) models.HealthReport
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// OperatorAuthService issues and verifies operator API tokens.
type OperatorAuthService interface {
	CreateToken(ctx context.Context, operator string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}
