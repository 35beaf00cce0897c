package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/crm-deal-sync/internal/adapter"
	"github.com/MKhiriev/crm-deal-sync/internal/logger"
	"github.com/MKhiriev/crm-deal-sync/internal/store"
	"github.com/MKhiriev/crm-deal-sync/internal/validators"
	"github.com/MKhiriev/crm-deal-sync/models"
)

type conflictService struct {
	crm       adapter.CRMAdapter
	statuses  store.RecordStatusRepository
	conflicts store.ConflictLogRepository
	deals     store.DealRepository
	records   *keyedMutex
	validator validators.Validator

	now    func() time.Time
	logger *logger.Logger
}

func newConflictService(crm adapter.CRMAdapter, storages *store.Storages, records *keyedMutex, log *logger.Logger) *conflictService {
	return &conflictService{
		crm:       crm,
		statuses:  storages.RecordStatus,
		conflicts: storages.ConflictLog,
		deals:     storages.Deals,
		records:   records,
		validator: validators.NewDealValidator(),
		now:       time.Now,
		logger:    log.Component("conflicts"),
	}
}

// ListConflicts returns records awaiting an override together with their
// local copy and the fields of their latest open conflict log entry.
func (c *conflictService) ListConflicts(ctx context.Context, limit, offset uint64) ([]models.ConflictView, error) {
	statuses, err := c.statuses.ListRecordStatuses(ctx, store.RecordStatusFilter{
		Status: models.RecordConflict,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, fmt.Errorf("error listing conflicts: %w", err)
	}

	views := make([]models.ConflictView, 0, len(statuses))
	for _, status := range statuses {
		view := models.ConflictView{Status: status}

		local, err := c.deals.GetByRemoteID(ctx, status.RemoteRecordID)
		switch {
		case err == nil:
			view.Local = &local
		case !errors.Is(err, store.ErrDealNotFound):
			return nil, fmt.Errorf("error loading local deal %s: %w", status.RemoteRecordID, err)
		}

		entries, err := c.conflicts.ListConflictLog(ctx, status.RemoteRecordID)
		if err != nil {
			return nil, fmt.Errorf("error loading conflict log %s: %w", status.RemoteRecordID, err)
		}
		for i := len(entries) - 1; i >= 0; i-- {
			if entries[i].ResolvedAt == nil {
				view.Fields = entries[i].Fields
				break
			}
		}

		views = append(views, view)
	}
	return views, nil
}

// ResolveConflict applies an operator override to a conflicted record. The
// remote side is written first; local state only changes once it accepted
// the result.
func (c *conflictService) ResolveConflict(ctx context.Context, remoteID string, override models.ConflictOverride) (models.RecordSyncStatus, error) {
	log := logger.FromContext(ctx)

	if err := c.validator.Validate(ctx, override); err != nil {
		return models.RecordSyncStatus{}, fmt.Errorf("error during override validation: %w", err)
	}

	unlock := c.records.Lock(remoteID)
	defer unlock()

	status, err := c.statuses.GetRecordStatus(ctx, remoteID)
	if errors.Is(err, store.ErrRecordStatusNotFound) {
		return models.RecordSyncStatus{}, ErrRecordNotInConflict
	}
	if err != nil {
		return models.RecordSyncStatus{}, fmt.Errorf("error reading record status: %w", err)
	}
	if status.SyncStatus != models.RecordConflict {
		return models.RecordSyncStatus{}, ErrRecordNotInConflict
	}

	if override.Strategy == models.OverrideMerge {
		for _, f := range status.ConflictFields {
			if _, ok := override.Merge[f]; !ok {
				return models.RecordSyncStatus{}, fmt.Errorf("%w: %s", validators.ErrIncompleteMerge, f)
			}
		}
	}

	local, err := c.deals.GetByRemoteID(ctx, remoteID)
	if err != nil {
		return models.RecordSyncStatus{}, fmt.Errorf("error loading local deal: %w", err)
	}

	var resolved models.Deal
	switch override.Strategy {
	case models.OverrideUseLocal:
		if err := c.pushOne(ctx, remoteID, local); err != nil {
			return models.RecordSyncStatus{}, err
		}
		resolved = local

	case models.OverrideUseRemote:
		remote, err := c.crm.GetDeal(ctx, remoteID)
		if err != nil {
			return models.RecordSyncStatus{}, err
		}
		if resolved, err = c.deals.Upsert(ctx, adoptIdentity(remote, local)); err != nil {
			return models.RecordSyncStatus{}, fmt.Errorf("error saving remote deal: %w", err)
		}

	case models.OverrideMerge:
		remote, err := c.crm.GetDeal(ctx, remoteID)
		if err != nil {
			return models.RecordSyncStatus{}, err
		}
		merged := adoptIdentity(remote, local)
		anyLocal := false
		for field, side := range override.Merge {
			if side == models.SideLocal {
				merged = merged.WithField(field, local)
				anyLocal = true
			}
		}
		if anyLocal {
			if err := c.pushOne(ctx, remoteID, merged); err != nil {
				return models.RecordSyncStatus{}, err
			}
		}
		if resolved, err = c.deals.SaveLocal(ctx, merged, c.now()); err != nil {
			return models.RecordSyncStatus{}, fmt.Errorf("error saving merged deal: %w", err)
		}
	}

	now := c.now().UTC()
	if resolved.LocalModifiedAt != nil && resolved.LocalModifiedAt.After(now) {
		now = *resolved.LocalModifiedAt
	}

	next := models.RecordSyncStatus{
		RemoteRecordID:   remoteID,
		LocalRecordID:    &resolved.LocalID,
		SyncStatus:       models.RecordSynced,
		LastSyncAt:       &now,
		LocalModifiedAt:  resolved.LocalModifiedAt,
		RemoteModifiedAt: status.RemoteModifiedAt,
	}
	if err := c.statuses.UpsertRecordStatus(ctx, next); err != nil {
		return models.RecordSyncStatus{}, fmt.Errorf("error writing record status: %w", err)
	}

	if err := c.conflicts.MarkConflictResolved(ctx, remoteID, "override:"+string(override.Strategy), now); err != nil {
		log.Err(err).Str("remote_id", remoteID).Msg("failed to mark conflict log resolved")
	}

	log.Info().Str("remote_id", remoteID).Str("strategy", string(override.Strategy)).Msg("conflict resolved")
	return next, nil
}

// pushOne writes the tracked fields of deal to the remote record.
func (c *conflictService) pushOne(ctx context.Context, remoteID string, deal models.Deal) error {
	results, err := c.crm.UpsertDeals(ctx, []models.DealUpdate{{RemoteID: remoteID, Fields: deal.FieldValues()}})
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("%w: no result returned for %s", adapter.ErrRemoteUnavailable, remoteID)
	}
	if r := results[0]; r.Status != models.BatchRecordSuccess {
		return fmt.Errorf("%w: remote rejected %s: %s %s", adapter.ErrValidation, remoteID, r.Code, r.Message)
	}
	return nil
}

func (c *conflictService) ConflictLog(ctx context.Context, remoteID string) ([]models.ConflictLogEntry, error) {
	return c.conflicts.ListConflictLog(ctx, remoteID)
}
