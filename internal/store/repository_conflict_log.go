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

// conflictLogRepository is the append-only audit trail of field divergences.
type conflictLogRepository struct {
	*DB
}

func NewConflictLogRepository(db *DB) ConflictLogRepository {
	return &conflictLogRepository{DB: db}
}

func (r *conflictLogRepository) AppendConflict(ctx context.Context, e models.ConflictLogEntry) error {
	fields, err := json.Marshal(e.Fields)
	if err != nil {
		return errors.Join(ErrEncodingColumn, err)
	}
	if e.DetectedAt.IsZero() {
		e.DetectedAt = time.Now()
	}

	query, args, err := r.builder.Insert(tableConflictLog).
		Columns(conflictLogColumns[1:]...).
		Values(
			e.RemoteRecordID,
			e.SessionID,
			string(e.Outcome),
			string(e.WinningSide),
			string(fields),
			e.DetectedAt.UTC(),
			nullTime(e.ResolvedAt),
			e.Resolution,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "conflictLogRepository.AppendConflict").
			Str("remote_id", e.RemoteRecordID).
			Msg("failed to append conflict log entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *conflictLogRepository) ListConflictLog(ctx context.Context, remoteID string) ([]models.ConflictLogEntry, error) {
	query, args, err := r.builder.Select(conflictLogColumns...).
		From(tableConflictLog).
		Where(sq.Eq{"remote_record_id": remoteID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "conflictLogRepository.ListConflictLog").Msg("failed to query conflict log")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.ConflictLogEntry, 0, 4)
	for rows.Next() {
		var (
			e          models.ConflictLogEntry
			outcome    string
			side       string
			fields     string
			resolvedAt sql.NullTime
		)
		if err := rows.Scan(&e.ID, &e.RemoteRecordID, &e.SessionID, &outcome, &side, &fields, &e.DetectedAt, &resolvedAt, &e.Resolution); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		e.Outcome = models.OutcomeKind(outcome)
		e.WinningSide = models.Side(side)
		e.DetectedAt = e.DetectedAt.UTC()
		e.ResolvedAt = timePtr(resolvedAt)
		if err := json.Unmarshal([]byte(fields), &e.Fields); err != nil {
			return nil, errors.Join(ErrEncodingColumn, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return entries, nil
}

func (r *conflictLogRepository) MarkConflictResolved(ctx context.Context, remoteID, resolution string, at time.Time) error {
	query, args, err := r.builder.Update(tableConflictLog).
		Set("resolved_at", at.UTC()).
		Set("resolution", resolution).
		Where(sq.Eq{"remote_record_id": remoteID, "resolved_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "conflictLogRepository.MarkConflictResolved").
			Str("remote_id", remoteID).
			Msg("failed to mark conflict resolved")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
