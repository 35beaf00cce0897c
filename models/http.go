package models

// StartSessionResponse is returned by every endpoint that starts a session.
type StartSessionResponse struct {
	SessionID string `json:"session_id"`
}

// SmallBatchRequest carries up to SmallBatchLimit record updates.
type SmallBatchRequest struct {
	Records []DealUpdate `json:"records" validate:"required,min=1,max=100,dive"`
}

// ResolveConflictRequest is the body of the conflict resolution endpoint.
type ResolveConflictRequest struct {
	ConflictOverride
}

// ConflictListResponse wraps the conflicts listing.
type ConflictListResponse struct {
	Conflicts []ConflictView `json:"conflicts"`
	Length    int            `json:"length"`
}

// SessionListResponse wraps a list of sessions.
type SessionListResponse struct {
	Sessions []SyncSession `json:"sessions"`
	Length   int           `json:"length"`
}

// SessionLogResponse wraps the audit log of a session.
type SessionLogResponse struct {
	SessionID string               `json:"session_id"`
	Entries   []SyncStatusLogEntry `json:"entries"`
}
