// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/crm-deal-sync/models"
)

// OperatorAPI is the subset of the operator API driven from the command
// line.
type OperatorAPI interface {
	StartFullSync(ctx context.Context) (string, error)
	StartIncrementalSync(ctx context.Context) (string, error)

	// PushLocalChanges returns an empty session id when nothing changed.
	PushLocalChanges(ctx context.Context) (string, error)

	SessionStatus(ctx context.Context, sessionID string) (models.SyncSession, error)
	CancelSession(ctx context.Context, sessionID string) error
	BulkStatus(ctx context.Context, sessionID string) (models.BulkStatus, error)

	ListConflicts(ctx context.Context, limit, offset uint64) ([]models.ConflictView, error)
	ResolveConflict(ctx context.Context, remoteID string, override models.ConflictOverride) (models.RecordSyncStatus, error)

	Health(ctx context.Context) (models.HealthReport, error)
	SaveToken(ctx context.Context, account string, payload models.TokenPayload) (string, error)
}
