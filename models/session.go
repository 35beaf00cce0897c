// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncKind identifies what a [SyncSession] does.
type SyncKind string

const (
	SyncKindFull        SyncKind = "full"
	SyncKindIncremental SyncKind = "incremental"
	SyncKindMassUpdate  SyncKind = "mass_update"
	SyncKindBulkWrite   SyncKind = "bulk_write"
)

// Valid reports whether k is a known kind.
func (k SyncKind) Valid() bool {
	switch k {
	case SyncKindFull, SyncKindIncremental, SyncKindMassUpdate, SyncKindBulkWrite:
		return true
	}
	return false
}

// SessionStatus is the lifecycle state of a [SyncSession].
type SessionStatus string

const (
	SessionPending    SessionStatus = "pending"
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
	SessionFailed     SessionStatus = "failed"
	SessionCancelled  SessionStatus = "cancelled"
)

// IsTerminal reports whether no further transition is allowed from s.
func (s SessionStatus) IsTerminal() bool {
	return s == SessionCompleted || s == SessionFailed || s == SessionCancelled
}

// CanTransition reports whether a session may move from s to next.
//
//	pending     → in_progress | failed | cancelled
//	in_progress → completed | failed | cancelled
func (s SessionStatus) CanTransition(next SessionStatus) bool {
	switch s {
	case SessionPending:
		return next == SessionInProgress || next == SessionFailed || next == SessionCancelled
	case SessionInProgress:
		return next == SessionCompleted || next == SessionFailed || next == SessionCancelled
	}
	return false
}

// SyncSession is one execution of a sync or bulk operation.
type SyncSession struct {
	ID               string         `json:"id"`
	Kind             SyncKind       `json:"kind"`
	Status           SessionStatus  `json:"status"`
	StartedAt        time.Time      `json:"started_at"`
	CompletedAt      *time.Time     `json:"completed_at,omitempty"`
	RecordsTotal     int64          `json:"records_total"`
	RecordsProcessed int64          `json:"records_processed"`
	APICallsMade     int64          `json:"api_calls_made"`
	ErrorMessage     string         `json:"error_message,omitempty"`
	Metadata         map[string]any `json:"metadata,omitempty"`
}

// Metadata keys used by bulk sessions.
const (
	MetadataJobID        = "job_id"
	MetadataFailedCount  = "failed_count"
	MetadataWatermark    = "watermark"
	MetadataSucceeded    = "succeeded_count"
	MetadataRemoteStatus = "remote_status"
	MetadataCursor       = "cursor"
	MetadataPages        = "pages"
)

// JobID returns the remote job id stored in the session metadata, if any.
func (s SyncSession) JobID() string {
	if s.Metadata == nil {
		return ""
	}
	id, _ := s.Metadata[MetadataJobID].(string)
	return id
}

// SessionProgress is a progress snapshot written after every page.
type SessionProgress struct {
	RecordsTotal     int64
	RecordsProcessed int64
	APICallsMade     int64
}

// SyncStatusLogEntry is an append-only audit line of a session.
type SyncStatusLogEntry struct {
	ID          int64         `json:"id"`
	SessionID   string        `json:"session_id"`
	Timestamp   time.Time     `json:"timestamp"`
	Status      SessionStatus `json:"status"`
	Message     string        `json:"message"`
	RecordCount int64         `json:"record_count"`
}
