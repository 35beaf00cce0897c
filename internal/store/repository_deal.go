package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/crm-deal-sync/internal/logger"
	"github.com/MKhiriev/crm-deal-sync/models"
)

// dealRepository is the local record repository over the "deals" table.
type dealRepository struct {
	*DB
}

func NewDealRepository(db *DB) DealRepository {
	return &dealRepository{DB: db}
}

// Upsert implements [DealRepository]. The returned deal carries the local id;
// its LocalModifiedAt is the caller's value.
func (r *dealRepository) Upsert(ctx context.Context, deal models.Deal) (models.Deal, error) {
	log := logger.FromContext(ctx)

	if deal.RemoteID == "" {
		return models.Deal{}, fmt.Errorf("%w: remote id is required", ErrBuildingSQLQuery)
	}

	query, args, err := buildUpsertRemoteDealQuery(r.builder, deal)
	if err != nil {
		return models.Deal{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.retryOnce(ctx, func() error {
		return r.QueryRowContext(ctx, query, args...).Scan(&deal.LocalID)
	})
	if err != nil {
		log.Err(err).
			Str("func", "dealRepository.Upsert").
			Str("remote_id", deal.RemoteID).
			Msg("failed to upsert deal")
		return models.Deal{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return deal, nil
}

func (r *dealRepository) GetByRemoteID(ctx context.Context, remoteID string) (models.Deal, error) {
	return r.getOne(ctx, sq.Eq{"remote_id": remoteID})
}

func (r *dealRepository) GetByLocalID(ctx context.Context, localID int64) (models.Deal, error) {
	return r.getOne(ctx, sq.Eq{"local_id": localID})
}

func (r *dealRepository) getOne(ctx context.Context, where sq.Eq) (models.Deal, error) {
	query, args, err := buildSelectDealQuery(r.builder, where)
	if err != nil {
		return models.Deal{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	d, err := scanDeal(r.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Deal{}, ErrDealNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "dealRepository.getOne").Msg("failed to scan deal")
		return models.Deal{}, err
	}
	return d, nil
}

func (r *dealRepository) GetModifiedSince(ctx context.Context, since time.Time, limit uint64) ([]models.Deal, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDealsModifiedSinceQuery(r.builder, since, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "dealRepository.GetModifiedSince").Time("since", since).Msg("failed to query deals")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	deals := make([]models.Deal, 0, 64)
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, err
		}
		deals = append(deals, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return deals, nil
}

func (r *dealRepository) SaveLocal(ctx context.Context, deal models.Deal, at time.Time) (models.Deal, error) {
	log := logger.FromContext(ctx)

	if deal.LocalID == 0 {
		query, args, err := buildInsertLocalDealQuery(r.builder, deal, at)
		if err != nil {
			return models.Deal{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if err := r.QueryRowContext(ctx, query, args...).Scan(&deal.LocalID); err != nil {
			log.Err(err).Str("func", "dealRepository.SaveLocal").Msg("failed to insert deal")
			return models.Deal{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	} else {
		query, args, err := buildUpdateLocalDealQuery(r.builder, deal, at)
		if err != nil {
			return models.Deal{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		res, err := r.ExecContext(ctx, query, args...)
		if err != nil {
			log.Err(err).Str("func", "dealRepository.SaveLocal").Int64("local_id", deal.LocalID).Msg("failed to update deal")
			return models.Deal{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return models.Deal{}, ErrDealNotFound
		}
	}

	stamped := at.UTC()
	deal.LocalModifiedAt = &stamped
	return deal, nil
}

func (r *dealRepository) AttachRemoteID(ctx context.Context, localID int64, remoteID string) error {
	query, args, err := r.builder.Update(tableDeals).
		Set("remote_id", remoteID).
		Where(sq.Eq{"local_id": localID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "dealRepository.AttachRemoteID").
			Int64("local_id", localID).
			Str("remote_id", remoteID).
			Msg("failed to attach remote id")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDealNotFound
	}
	return nil
}

func scanDeal(row rowScanner) (models.Deal, error) {
	var (
		d              models.Deal
		remoteID       sql.NullString
		remoteModified sql.NullTime
		localModified  sql.NullTime
	)

	err := row.Scan(
		&d.LocalID,
		&remoteID,
		&d.Name,
		&d.Stage,
		&d.Amount,
		&d.Currency,
		&d.CloseDate,
		&d.Owner,
		&d.AccountName,
		&d.Probability,
		&d.Description,
		&remoteModified,
		&localModified,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Deal{}, err
	}
	if err != nil {
		return models.Deal{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	d.RemoteID = remoteID.String
	d.RemoteModifiedAt = timePtr(remoteModified)
	d.LocalModifiedAt = timePtr(localModified)
	return d, nil
}
