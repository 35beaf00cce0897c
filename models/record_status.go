package models

import "time"

// RecordState is the per-record sync state.
type RecordState string

const (
	RecordSynced   RecordState = "synced"
	RecordPending  RecordState = "pending"
	RecordConflict RecordState = "conflict"
	RecordError    RecordState = "error"
)

// RecordSyncStatus tracks the sync state of one remote record. It is keyed by
// RemoteRecordID and never deleted.
//
// SyncStatus is RecordConflict exactly when ConflictFields is non-empty.
type RecordSyncStatus struct {
	RemoteRecordID   string      `json:"remote_record_id"`
	LocalRecordID    *int64      `json:"local_record_id,omitempty"`
	SyncStatus       RecordState `json:"sync_status"`
	LastSyncAt       *time.Time  `json:"last_sync_at,omitempty"`
	LocalModifiedAt  *time.Time  `json:"local_modified_at,omitempty"`
	RemoteModifiedAt *time.Time  `json:"remote_modified_at,omitempty"`
	ConflictFields   []string    `json:"conflict_fields,omitempty"`
	ErrorDetails     string      `json:"error_details,omitempty"`
}

// Normalize enforces the conflict/conflict_fields pairing: a status with
// conflict fields is a conflict, and a non-conflict status carries none.
func (r RecordSyncStatus) Normalize() RecordSyncStatus {
	if len(r.ConflictFields) > 0 {
		r.SyncStatus = RecordConflict
		return r
	}
	if r.SyncStatus == RecordConflict {
		r.SyncStatus = RecordPending
	}
	r.ConflictFields = nil
	return r
}

// RecordStatusCounts aggregates record statuses for health reporting.
type RecordStatusCounts struct {
	Total    int64 `json:"total"`
	Synced   int64 `json:"synced"`
	Pending  int64 `json:"pending"`
	Conflict int64 `json:"conflict"`
	Error    int64 `json:"error"`
}
