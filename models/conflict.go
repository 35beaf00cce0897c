// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// OutcomeKind is the kind of [ResolutionOutcome].
type OutcomeKind string

const (
	OutcomeNoConflict   OutcomeKind = "no_conflict"
	OutcomeAutoResolved OutcomeKind = "auto_resolved"
	OutcomeUnresolved   OutcomeKind = "unresolved"
)

// Side names the origin of a winning value.
type Side string

const (
	SideLocal  Side = "local"
	SideRemote Side = "remote"
	SideMixed  Side = "mixed"
)

// ConflictPolicy selects how diverging fields are resolved.
type ConflictPolicy string

const (
	PolicyRemoteWins     ConflictPolicy = "remote_wins"
	PolicyLocalWins      ConflictPolicy = "local_wins"
	PolicyManual         ConflictPolicy = "manual"
	PolicyFieldOwnership ConflictPolicy = "field_ownership"
)

// Valid reports whether p is a known policy.
func (p ConflictPolicy) Valid() bool {
	switch p {
	case PolicyRemoteWins, PolicyLocalWins, PolicyManual, PolicyFieldOwnership:
		return true
	}
	return false
}

// FieldDiff is one tracked field that differs between local and remote.
type FieldDiff struct {
	Field  string `json:"field"`
	Local  any    `json:"local"`
	Remote any    `json:"remote"`
	Winner Side   `json:"winner,omitempty"`
}

// ResolutionOutcome is the result of comparing a local and a remote version
// of the same record.
//
// Merged holds the record to persist for auto-resolved outcomes.
type ResolutionOutcome struct {
	Kind        OutcomeKind `json:"kind"`
	WinningSide Side        `json:"winning_side,omitempty"`
	Fields      []FieldDiff `json:"fields,omitempty"`
	Merged      Deal        `json:"-"`
}

// FieldNames returns the names of the diverging fields.
func (o ResolutionOutcome) FieldNames() []string {
	names := make([]string, 0, len(o.Fields))
	for _, f := range o.Fields {
		names = append(names, f.Field)
	}
	return names
}

// OverrideStrategy is the explicit decision applied to an unresolved conflict.
type OverrideStrategy string

const (
	OverrideUseLocal  OverrideStrategy = "use_local"
	OverrideUseRemote OverrideStrategy = "use_remote"
	OverrideMerge     OverrideStrategy = "merge"
)

// ConflictOverride is an operator decision for one conflicted record.
// Merge maps every conflicted field to the side whose value is kept and is
// only read when Strategy is [OverrideMerge].
type ConflictOverride struct {
	Strategy OverrideStrategy `json:"strategy"`
	Merge    map[string]Side  `json:"merge,omitempty"`
}

// ConflictLogEntry is an audit line written for every detected divergence.
type ConflictLogEntry struct {
	ID             int64       `json:"id"`
	RemoteRecordID string      `json:"remote_record_id"`
	SessionID      string      `json:"session_id,omitempty"`
	Outcome        OutcomeKind `json:"outcome"`
	WinningSide    Side        `json:"winning_side,omitempty"`
	Fields         []FieldDiff `json:"fields"`
	DetectedAt     time.Time   `json:"detected_at"`
	ResolvedAt     *time.Time  `json:"resolved_at,omitempty"`
	Resolution     string      `json:"resolution,omitempty"`
}

// ConflictView is a conflicted record as returned by the conflicts listing.
type ConflictView struct {
	Status RecordSyncStatus `json:"status"`
	Local  *Deal            `json:"local,omitempty"`
	Fields []FieldDiff      `json:"fields,omitempty"`
}
