package store

import (
	"context"
	"time"

	"github.com/MKhiriev/crm-deal-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// CredentialRepository persists one OAuth credential per account identity.
// Only the token manager writes through it.
type CredentialRepository interface {
	GetCredential(ctx context.Context, account string) (models.Credential, error)
	SaveCredential(ctx context.Context, account string, cred models.Credential) error
	DeleteCredential(ctx context.Context, account string) error
}

// SessionFilter narrows [SessionRepository.ListSessions]. Zero values match
// everything.
type SessionFilter struct {
	Kind   models.SyncKind
	Status models.SessionStatus
	Limit  uint64
}

// SessionRepository stores sync sessions and their append-only status log.
type SessionRepository interface {
	// CreateSession inserts a new session. It returns
	// [ErrSessionAlreadyActive] when a full or incremental session of the
	// same kind is pending or in progress.
	CreateSession(ctx context.Context, session models.SyncSession) error
	GetSession(ctx context.Context, id string) (models.SyncSession, error)
	ListSessions(ctx context.Context, filter SessionFilter) ([]models.SyncSession, error)

	// ListActiveSessions returns every pending or in-progress session.
	ListActiveSessions(ctx context.Context) ([]models.SyncSession, error)

	// LastCompletedSession returns the most recently completed session of
	// kind, or [ErrSessionNotFound].
	LastCompletedSession(ctx context.Context, kind models.SyncKind) (models.SyncSession, error)

	// TransitionSession moves a session from one status to another. Entering
	// a terminal status stamps completed_at with at. It returns
	// [ErrInvalidStatusTransition] when the session is not in from.
	TransitionSession(ctx context.Context, id string, from, to models.SessionStatus, errMsg string, at time.Time) error

	UpdateProgress(ctx context.Context, id string, progress models.SessionProgress) error
	UpdateMetadata(ctx context.Context, id string, metadata map[string]any) error

	AppendLog(ctx context.Context, entry models.SyncStatusLogEntry) error
	ListLog(ctx context.Context, sessionID string) ([]models.SyncStatusLogEntry, error)
}

// RecordStatusFilter narrows [RecordStatusRepository.ListRecordStatuses].
type RecordStatusFilter struct {
	Status models.RecordState
	Limit  uint64
	Offset uint64
}

// RecordStatusRepository tracks the per-record sync state keyed by remote
// record id. Rows are never deleted.
type RecordStatusRepository interface {
	GetRecordStatus(ctx context.Context, remoteID string) (models.RecordSyncStatus, error)

	// UpsertRecordStatus inserts or replaces the status of one record with
	// ON CONFLICT (remote_record_id). A nil LocalRecordID keeps the stored one.
	UpsertRecordStatus(ctx context.Context, status models.RecordSyncStatus) error

	// UpsertRecordStatuses applies several upserts in one transaction.
	UpsertRecordStatuses(ctx context.Context, statuses []models.RecordSyncStatus) error

	ListRecordStatuses(ctx context.Context, filter RecordStatusFilter) ([]models.RecordSyncStatus, error)
	CountRecordStatuses(ctx context.Context) (models.RecordStatusCounts, error)
}

// ConflictLogRepository is the audit trail of detected divergences.
type ConflictLogRepository interface {
	AppendConflict(ctx context.Context, entry models.ConflictLogEntry) error
	ListConflictLog(ctx context.Context, remoteID string) ([]models.ConflictLogEntry, error)

	// MarkConflictResolved stamps every open entry of remoteID as resolved.
	MarkConflictResolved(ctx context.Context, remoteID, resolution string, at time.Time) error
}

// DealRepository is the local record repository for deals.
type DealRepository interface {
	// Upsert writes a deal received from the remote side, keyed by its
	// remote id. local_modified_at is never changed by this path.
	Upsert(ctx context.Context, deal models.Deal) (models.Deal, error)

	GetByRemoteID(ctx context.Context, remoteID string) (models.Deal, error)
	GetByLocalID(ctx context.Context, localID int64) (models.Deal, error)

	// GetModifiedSince returns deals whose local_modified_at is after since,
	// oldest first, at most limit rows (0 means no limit).
	GetModifiedSince(ctx context.Context, since time.Time, limit uint64) ([]models.Deal, error)

	// SaveLocal writes a locally edited deal and stamps local_modified_at.
	SaveLocal(ctx context.Context, deal models.Deal, at time.Time) (models.Deal, error)

	// AttachRemoteID links a locally created deal to the id the remote side
	// assigned to it.
	AttachRemoteID(ctx context.Context, localID int64, remoteID string) error
}
