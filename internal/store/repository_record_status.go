package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/crm-deal-sync/internal/logger"
	"github.com/MKhiriev/crm-deal-sync/models"
)

// recordStatusRepository stores per-record sync state in
// "record_sync_status". Every write goes through
// [models.RecordSyncStatus.Normalize] so that sync_status is conflict exactly
// when conflict_fields is non-empty.
type recordStatusRepository struct {
	*DB
}

func NewRecordStatusRepository(db *DB) RecordStatusRepository {
	return &recordStatusRepository{DB: db}
}

func (r *recordStatusRepository) GetRecordStatus(ctx context.Context, remoteID string) (models.RecordSyncStatus, error) {
	query, args, err := r.builder.Select(recordStatusColumns...).
		From(tableRecordStatus).
		Where(sq.Eq{"remote_record_id": remoteID}).
		ToSql()
	if err != nil {
		return models.RecordSyncStatus{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	st, err := scanRecordStatus(r.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.RecordSyncStatus{}, ErrRecordStatusNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "recordStatusRepository.GetRecordStatus").
			Str("remote_id", remoteID).
			Msg("failed to scan record status")
		return models.RecordSyncStatus{}, err
	}
	return st, nil
}

func (r *recordStatusRepository) UpsertRecordStatus(ctx context.Context, st models.RecordSyncStatus) error {
	query, args, err := buildUpsertRecordStatusQuery(r.builder, st.Normalize())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.retryOnce(ctx, func() error {
		_, execErr := r.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "recordStatusRepository.UpsertRecordStatus").
			Str("remote_id", st.RemoteRecordID).
			Msg("failed to upsert record status")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *recordStatusRepository) UpsertRecordStatuses(ctx context.Context, statuses []models.RecordSyncStatus) error {
	log := logger.FromContext(ctx)

	if len(statuses) == 0 {
		return nil
	}

	tx, err := r.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "recordStatusRepository.UpsertRecordStatuses").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for i, st := range statuses {
		query, args, err := buildUpsertRecordStatusQuery(r.builder, st.Normalize())
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).
				Str("func", "recordStatusRepository.UpsertRecordStatuses").
				Int("index", i).
				Str("remote_id", st.RemoteRecordID).
				Msg("failed to upsert record status")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "recordStatusRepository.UpsertRecordStatuses").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}

func (r *recordStatusRepository) ListRecordStatuses(ctx context.Context, filter RecordStatusFilter) ([]models.RecordSyncStatus, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectRecordStatusesQuery(r.builder, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "recordStatusRepository.ListRecordStatuses").Msg("failed to query record statuses")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	statuses := make([]models.RecordSyncStatus, 0, 32)
	for rows.Next() {
		st, err := scanRecordStatus(rows)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return statuses, nil
}

func (r *recordStatusRepository) CountRecordStatuses(ctx context.Context) (models.RecordStatusCounts, error) {
	query, args, err := r.builder.Select("sync_status", "COUNT(*)").
		From(tableRecordStatus).
		GroupBy("sync_status").
		ToSql()
	if err != nil {
		return models.RecordStatusCounts{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "recordStatusRepository.CountRecordStatuses").Msg("failed to count record statuses")
		return models.RecordStatusCounts{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var counts models.RecordStatusCounts
	for rows.Next() {
		var (
			status string
			n      int64
		)
		if err := rows.Scan(&status, &n); err != nil {
			return models.RecordStatusCounts{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		counts.Total += n
		switch models.RecordState(status) {
		case models.RecordSynced:
			counts.Synced = n
		case models.RecordPending:
			counts.Pending = n
		case models.RecordConflict:
			counts.Conflict = n
		case models.RecordError:
			counts.Error = n
		}
	}
	if err := rows.Err(); err != nil {
		return models.RecordStatusCounts{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return counts, nil
}

func scanRecordStatus(row rowScanner) (models.RecordSyncStatus, error) {
	var (
		st             models.RecordSyncStatus
		localID        sql.NullInt64
		status         string
		lastSync       sql.NullTime
		localModified  sql.NullTime
		remoteModified sql.NullTime
		fields         string
	)

	err := row.Scan(&st.RemoteRecordID, &localID, &status, &lastSync, &localModified, &remoteModified, &fields, &st.ErrorDetails)
	if errors.Is(err, sql.ErrNoRows) {
		return models.RecordSyncStatus{}, err
	}
	if err != nil {
		return models.RecordSyncStatus{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	st.LocalRecordID = int64Ptr(localID)
	st.SyncStatus = models.RecordState(status)
	st.LastSyncAt = timePtr(lastSync)
	st.LocalModifiedAt = timePtr(localModified)
	st.RemoteModifiedAt = timePtr(remoteModified)
	if st.ConflictFields, err = decodeStrings(fields); err != nil {
		return models.RecordSyncStatus{}, err
	}

	return st, nil
}
