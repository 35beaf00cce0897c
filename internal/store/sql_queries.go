// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/goccy/go-json"

	"github.com/MKhiriev/crm-deal-sync/models"
)

const (
	tableCredentials   = "credentials"
	tableSessions      = "sync_sessions"
	tableSessionLog    = "sync_status_log"
	tableRecordStatus  = "record_sync_status"
	tableConflictLog   = "conflict_log"
	tableDeals         = "deals"
	activeStatusFilter = "status IN ('pending', 'in_progress')"
)

var (
	credentialColumns = []string{"account_identity", "access_token", "refresh_token", "expires_at", "scopes", "updated_at"}

	sessionColumns = []string{
		"id", "kind", "status", "started_at", "completed_at",
		"records_total", "records_processed", "api_calls_made", "error_message", "metadata",
	}

	sessionLogColumns = []string{"id", "session_id", "logged_at", "status", "message", "record_count"}

	recordStatusColumns = []string{
		"remote_record_id", "local_record_id", "sync_status", "last_sync_at",
		"local_modified_at", "remote_modified_at", "conflict_fields", "error_details",
	}

	conflictLogColumns = []string{
		"id", "remote_record_id", "session_id", "outcome", "winning_side",
		"fields", "detected_at", "resolved_at", "resolution",
	}

	dealFieldColumns = []string{
		"deal_name", "stage", "amount", "currency", "closing_date",
		"owner", "account_name", "probability", "description",
	}

	dealColumns = append(append([]string{"local_id", "remote_id"}, dealFieldColumns...), "remote_modified_at", "local_modified_at")
)

// ── credentials ──

func buildSaveCredentialQuery(b sq.StatementBuilderType, account string, cred models.Credential, now time.Time) (string, []any, error) {
	return b.Insert(tableCredentials).
		Columns(credentialColumns...).
		Values(account, cred.AccessToken, cred.RefreshToken, cred.ExpiresAt.UTC(), strings.Join(cred.Scopes, " "), now.UTC()).
		Suffix(`ON CONFLICT (account_identity) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = CASE WHEN excluded.refresh_token = '' THEN credentials.refresh_token ELSE excluded.refresh_token END,
			expires_at = excluded.expires_at,
			scopes = CASE WHEN excluded.scopes = '' THEN credentials.scopes ELSE excluded.scopes END,
			updated_at = excluded.updated_at`).
		ToSql()
}

func buildGetCredentialQuery(b sq.StatementBuilderType, account string) (string, []any, error) {
	return b.Select(credentialColumns...).
		From(tableCredentials).
		Where(sq.Eq{"account_identity": account}).
		ToSql()
}

// ── sessions ──

func buildSelectSessionsQuery(b sq.StatementBuilderType, filter SessionFilter) (string, []any, error) {
	q := b.Select(sessionColumns...).From(tableSessions)
	if filter.Kind != "" {
		q = q.Where(sq.Eq{"kind": string(filter.Kind)})
	}
	if filter.Status != "" {
		q = q.Where(sq.Eq{"status": string(filter.Status)})
	}
	q = q.OrderBy("started_at DESC", "id DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	return q.ToSql()
}

func buildLastCompletedSessionQuery(b sq.StatementBuilderType, kind models.SyncKind) (string, []any, error) {
	return b.Select(sessionColumns...).
		From(tableSessions).
		Where(sq.Eq{"kind": string(kind), "status": string(models.SessionCompleted)}).
		OrderBy("completed_at DESC", "id DESC").
		Limit(1).
		ToSql()
}

func buildTransitionSessionQuery(b sq.StatementBuilderType, id string, from, to models.SessionStatus, errMsg string, at time.Time) (string, []any, error) {
	q := b.Update(tableSessions).
		Set("status", string(to)).
		Where(sq.Eq{"id": id, "status": string(from)})
	if errMsg != "" {
		q = q.Set("error_message", errMsg)
	}
	if to.IsTerminal() {
		q = q.Set("completed_at", at.UTC())
	}
	return q.ToSql()
}

// ── record sync status ──

func buildUpsertRecordStatusQuery(b sq.StatementBuilderType, st models.RecordSyncStatus) (string, []any, error) {
	fields, err := encodeStrings(st.ConflictFields)
	if err != nil {
		return "", nil, err
	}

	return b.Insert(tableRecordStatus).
		Columns(recordStatusColumns...).
		Values(
			st.RemoteRecordID,
			nullInt64(st.LocalRecordID),
			string(st.SyncStatus),
			nullTime(st.LastSyncAt),
			nullTime(st.LocalModifiedAt),
			nullTime(st.RemoteModifiedAt),
			fields,
			st.ErrorDetails,
		).
		Suffix(`ON CONFLICT (remote_record_id) DO UPDATE SET
			local_record_id = COALESCE(excluded.local_record_id, record_sync_status.local_record_id),
			sync_status = excluded.sync_status,
			last_sync_at = COALESCE(excluded.last_sync_at, record_sync_status.last_sync_at),
			local_modified_at = COALESCE(excluded.local_modified_at, record_sync_status.local_modified_at),
			remote_modified_at = COALESCE(excluded.remote_modified_at, record_sync_status.remote_modified_at),
			conflict_fields = excluded.conflict_fields,
			error_details = excluded.error_details`).
		ToSql()
}

func buildSelectRecordStatusesQuery(b sq.StatementBuilderType, filter RecordStatusFilter) (string, []any, error) {
	q := b.Select(recordStatusColumns...).From(tableRecordStatus)
	if filter.Status != "" {
		q = q.Where(sq.Eq{"sync_status": string(filter.Status)})
	}
	q = q.OrderBy("remote_record_id")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	return q.ToSql()
}

// ── deals ──

func dealFieldValues(d models.Deal) []any {
	return []any{d.Name, d.Stage, d.Amount, d.Currency, d.CloseDate, d.Owner, d.AccountName, d.Probability, d.Description}
}

func buildUpsertRemoteDealQuery(b sq.StatementBuilderType, d models.Deal) (string, []any, error) {
	values := append([]any{d.RemoteID}, dealFieldValues(d)...)
	values = append(values, nullTime(d.RemoteModifiedAt))

	set := make([]string, 0, len(dealFieldColumns)+1)
	for _, c := range append(dealFieldColumns, "remote_modified_at") {
		set = append(set, c+" = excluded."+c)
	}

	return b.Insert(tableDeals).
		Columns(append(append([]string{"remote_id"}, dealFieldColumns...), "remote_modified_at")...).
		Values(values...).
		Suffix("ON CONFLICT (remote_id) DO UPDATE SET " + strings.Join(set, ", ") + " RETURNING local_id").
		ToSql()
}

func buildSelectDealQuery(b sq.StatementBuilderType, where sq.Sqlizer) (string, []any, error) {
	return b.Select(dealColumns...).From(tableDeals).Where(where).ToSql()
}

func buildDealsModifiedSinceQuery(b sq.StatementBuilderType, since time.Time, limit uint64) (string, []any, error) {
	q := b.Select(dealColumns...).
		From(tableDeals).
		Where(sq.Gt{"local_modified_at": since.UTC()}).
		OrderBy("local_modified_at", "local_id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return q.ToSql()
}

func buildInsertLocalDealQuery(b sq.StatementBuilderType, d models.Deal, at time.Time) (string, []any, error) {
	values := append([]any{nullString(d.RemoteID)}, dealFieldValues(d)...)
	values = append(values, nullTime(d.RemoteModifiedAt), at.UTC())

	return b.Insert(tableDeals).
		Columns(append(append([]string{"remote_id"}, dealFieldColumns...), "remote_modified_at", "local_modified_at")...).
		Values(values...).
		Suffix("RETURNING local_id").
		ToSql()
}

func buildUpdateLocalDealQuery(b sq.StatementBuilderType, d models.Deal, at time.Time) (string, []any, error) {
	q := b.Update(tableDeals)
	for i, v := range dealFieldValues(d) {
		q = q.Set(dealFieldColumns[i], v)
	}
	return q.Set("local_modified_at", at.UTC()).
		Where(sq.Eq{"local_id": d.LocalID}).
		ToSql()
}

// ── column helpers ──

func nullTime(t *time.Time) sql.NullTime {
	if t == nil || t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// encodeStrings encodes a string slice as a JSON array; nil becomes "[]".
func encodeStrings(values []string) (string, error) {
	if len(values) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "", errors.Join(ErrEncodingColumn, err)
	}
	return string(b), nil
}

func decodeStrings(raw string) ([]string, error) {
	if raw == "" || raw == "[]" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, errors.Join(ErrEncodingColumn, err)
	}
	return values, nil
}

func splitScopes(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Fields(raw)
}
