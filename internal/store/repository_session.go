// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/goccy/go-json"

	"github.com/MKhiriev/crm-deal-sync/internal/logger"
	"github.com/MKhiriev/crm-deal-sync/models"
)

// sessionRepository stores sync sessions in "sync_sessions" and their log in
// "sync_status_log".
type sessionRepository struct {
	*DB
}

func NewSessionRepository(db *DB) SessionRepository {
	return &sessionRepository{DB: db}
}

// CreateSession implements [SessionRepository]. The partial unique index
// sync_sessions_one_active_per_kind turns a second active full or
// incremental session into [ErrSessionAlreadyActive].
func (r *sessionRepository) CreateSession(ctx context.Context, s models.SyncSession) error {
	log := logger.FromContext(ctx)

	metadata, err := encodeMetadata(s.Metadata)
	if err != nil {
		return err
	}

	query, args, err := r.builder.Insert(tableSessions).
		Columns(sessionColumns...).
		Values(
			s.ID,
			string(s.Kind),
			string(s.Status),
			s.StartedAt.UTC(),
			nullTime(s.CompletedAt),
			s.RecordsTotal,
			s.RecordsProcessed,
			s.APICallsMade,
			s.ErrorMessage,
			metadata,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrSessionAlreadyActive
		}
		log.Err(err).
			Str("func", "sessionRepository.CreateSession").
			Str("session_id", s.ID).
			Str("kind", string(s.Kind)).
			Msg("failed to insert session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *sessionRepository) GetSession(ctx context.Context, id string) (models.SyncSession, error) {
	query, args, err := r.builder.Select(sessionColumns...).From(tableSessions).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return models.SyncSession{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	s, err := scanSession(r.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncSession{}, ErrSessionNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "sessionRepository.GetSession").Str("session_id", id).Msg("failed to scan session")
		return models.SyncSession{}, err
	}
	return s, nil
}

func (r *sessionRepository) ListSessions(ctx context.Context, filter SessionFilter) ([]models.SyncSession, error) {
	query, args, err := buildSelectSessionsQuery(r.builder, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.querySessions(ctx, "sessionRepository.ListSessions", query, args)
}

func (r *sessionRepository) ListActiveSessions(ctx context.Context) ([]models.SyncSession, error) {
	query, args, err := r.builder.Select(sessionColumns...).
		From(tableSessions).
		Where(activeStatusFilter).
		OrderBy("started_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.querySessions(ctx, "sessionRepository.ListActiveSessions", query, args)
}

func (r *sessionRepository) LastCompletedSession(ctx context.Context, kind models.SyncKind) (models.SyncSession, error) {
	query, args, err := buildLastCompletedSessionQuery(r.builder, kind)
	if err != nil {
		return models.SyncSession{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	s, err := scanSession(r.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncSession{}, ErrSessionNotFound
	}
	return s, err
}

func (r *sessionRepository) TransitionSession(ctx context.Context, id string, from, to models.SessionStatus, errMsg string, at time.Time) error {
	log := logger.FromContext(ctx)

	if !from.CanTransition(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, from, to)
	}

	query, args, err := buildTransitionSessionQuery(r.builder, id, from, to, errMsg, at)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var res sql.Result
	err = r.retryOnce(ctx, func() error {
		var execErr error
		res, execErr = r.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "sessionRepository.TransitionSession").
			Str("session_id", id).
			Str("to", string(to)).
			Msg("failed to update session status")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		if _, getErr := r.GetSession(ctx, id); errors.Is(getErr, ErrSessionNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("%w: session %s is not %s", ErrInvalidStatusTransition, id, from)
	}

	return nil
}

func (r *sessionRepository) UpdateProgress(ctx context.Context, id string, p models.SessionProgress) error {
	query, args, err := r.builder.Update(tableSessions).
		Set("records_total", p.RecordsTotal).
		Set("records_processed", p.RecordsProcessed).
		Set("api_calls_made", p.APICallsMade).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.execOne(ctx, "sessionRepository.UpdateProgress", id, query, args)
}

func (r *sessionRepository) UpdateMetadata(ctx context.Context, id string, metadata map[string]any) error {
	encoded, err := encodeMetadata(metadata)
	if err != nil {
		return err
	}

	query, args, err := r.builder.Update(tableSessions).Set("metadata", encoded).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.execOne(ctx, "sessionRepository.UpdateMetadata", id, query, args)
}

func (r *sessionRepository) AppendLog(ctx context.Context, e models.SyncStatusLogEntry) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	query, args, err := r.builder.Insert(tableSessionLog).
		Columns(sessionLogColumns[1:]...).
		Values(e.SessionID, e.Timestamp.UTC(), string(e.Status), e.Message, e.RecordCount).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.retryOnce(ctx, func() error {
		_, execErr := r.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "sessionRepository.AppendLog").
			Str("session_id", e.SessionID).
			Msg("failed to append session log entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *sessionRepository) ListLog(ctx context.Context, sessionID string) ([]models.SyncStatusLogEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.Select(sessionLogColumns...).
		From(tableSessionLog).
		Where(sq.Eq{"session_id": sessionID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "sessionRepository.ListLog").Str("session_id", sessionID).Msg("failed to query session log")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.SyncStatusLogEntry, 0, 16)
	for rows.Next() {
		var (
			e      models.SyncStatusLogEntry
			status string
		)
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Timestamp, &status, &e.Message, &e.RecordCount); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		e.Status = models.SessionStatus(status)
		e.Timestamp = e.Timestamp.UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

func (r *sessionRepository) querySessions(ctx context.Context, fn, query string, args []any) ([]models.SyncSession, error) {
	log := logger.FromContext(ctx)

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to query sessions")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	sessions := make([]models.SyncSession, 0, 8)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			log.Err(err).Str("func", fn).Msg("failed to scan session row")
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return sessions, nil
}

func (r *sessionRepository) execOne(ctx context.Context, fn, id, query string, args []any) error {
	res, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Str("session_id", id).Msg("failed to update session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (models.SyncSession, error) {
	var (
		s           models.SyncSession
		kind        string
		status      string
		completedAt sql.NullTime
		metadata    string
	)

	err := row.Scan(
		&s.ID,
		&kind,
		&status,
		&s.StartedAt,
		&completedAt,
		&s.RecordsTotal,
		&s.RecordsProcessed,
		&s.APICallsMade,
		&s.ErrorMessage,
		&metadata,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncSession{}, err
	}
	if err != nil {
		return models.SyncSession{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	s.Kind = models.SyncKind(kind)
	s.Status = models.SessionStatus(status)
	s.StartedAt = s.StartedAt.UTC()
	s.CompletedAt = timePtr(completedAt)

	if metadata != "" && metadata != "{}" {
		if err := json.Unmarshal([]byte(metadata), &s.Metadata); err != nil {
			return models.SyncSession{}, errors.Join(ErrEncodingColumn, err)
		}
	}

	return s, nil
}

func encodeMetadata(m map[string]any) (string, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", errors.Join(ErrEncodingColumn, err)
	}
	return string(b), nil
}
