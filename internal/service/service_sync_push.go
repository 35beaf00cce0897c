package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/crm-deal-sync/internal/store"
	"github.com/MKhiriev/crm-deal-sync/models"
)

// pushHistoryLimit bounds how many completed bulk_write sessions are scanned
// for the last clean push.
const pushHistoryLimit = 200

// PushLocalChanges collects deals modified locally since the last clean push
// and hands them to the pusher. Deals in conflict and deals already synced
// after their last local edit are skipped. While an earlier push job is still
// pending or running it returns [ErrSyncAlreadyRunning].
func (o *syncOrchestrator) PushLocalChanges(ctx context.Context) (string, error) {
	if !o.pushing.TryLock() {
		return "", ErrSyncAlreadyRunning
	}
	defer o.pushing.Unlock()

	inFlight, err := o.activePush(ctx)
	if err != nil {
		return "", err
	}
	if inFlight != "" {
		o.logger.Debug().Str("session_id", inFlight).Msg("previous push still running")
		return "", ErrSyncAlreadyRunning
	}

	since, err := o.pushWatermark(ctx)
	if err != nil {
		return "", err
	}

	cutoff := o.now().UTC()
	candidates, err := o.deals.GetModifiedSince(ctx, since, models.BulkWriteLimit)
	if err != nil {
		return "", fmt.Errorf("error reading locally modified deals: %w", err)
	}

	toPush := make([]models.Deal, 0, len(candidates))
	for _, d := range candidates {
		ok, err := o.needsPush(ctx, d)
		if err != nil {
			return "", err
		}
		if ok {
			toPush = append(toPush, d)
		}
	}

	log := o.logger.With().Time("since", since).Int("candidates", len(candidates)).Int("to_push", len(toPush)).Logger()
	if len(toPush) == 0 {
		log.Debug().Msg("nothing to push")
		return "", nil
	}

	sessionID, err := o.pusher.PushDeals(ctx, toPush, cutoff)
	if err != nil {
		log.Err(err).Str("session_id", sessionID).Msg("push failed")
		return sessionID, err
	}

	log.Info().Str("session_id", sessionID).Msg("local changes pushed")
	return sessionID, nil
}

// pushWatermark returns the cutoff of the newest completed push session that
// had no failed records, or the epoch. Failed records are retried by every
// push until one completes cleanly.
func (o *syncOrchestrator) pushWatermark(ctx context.Context) (time.Time, error) {
	sessions, err := o.sessions.ListSessions(ctx, store.SessionFilter{
		Kind:   models.SyncKindBulkWrite,
		Status: models.SessionCompleted,
		Limit:  pushHistoryLimit,
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("error listing push sessions: %w", err)
	}

	for _, s := range sessions {
		if metadataString(s.Metadata, models.MetadataSource) != models.SourcePush {
			continue
		}
		if metadataInt(s.Metadata, models.MetadataFailedCount) > 0 {
			continue
		}
		if raw := metadataString(s.Metadata, models.MetadataWatermark); raw != "" {
			if at, err := time.Parse(time.RFC3339Nano, raw); err == nil {
				return at, nil
			}
		}
		return s.StartedAt, nil
	}
	return o.epoch, nil
}

// activePush returns the id of a push session that has not finished yet.
// Its rows are not attached to remote ids until the job completes, so
// pushing again would insert them twice.
func (o *syncOrchestrator) activePush(ctx context.Context) (string, error) {
	active, err := o.sessions.ListActiveSessions(ctx)
	if err != nil {
		return "", fmt.Errorf("error listing active sessions: %w", err)
	}
	for _, s := range active {
		if s.Kind == models.SyncKindBulkWrite && metadataString(s.Metadata, models.MetadataSource) == models.SourcePush {
			return s.ID, nil
		}
	}
	return "", nil
}

func (o *syncOrchestrator) needsPush(ctx context.Context, d models.Deal) (bool, error) {
	if d.RemoteID == "" {
		return true, nil
	}

	status, err := o.statuses.GetRecordStatus(ctx, d.RemoteID)
	switch {
	case errors.Is(err, store.ErrRecordStatusNotFound):
		return true, nil
	case err != nil:
		return false, fmt.Errorf("error reading record status: %w", err)
	case status.SyncStatus == models.RecordConflict:
		return false, nil
	case status.LastSyncAt != nil && d.LocalModifiedAt != nil && !status.LastSyncAt.Before(*d.LocalModifiedAt):
		return false, nil
	}
	return true, nil
}
