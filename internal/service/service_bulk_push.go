package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/crm-deal-sync/internal/adapter"
	"github.com/MKhiriev/crm-deal-sync/models"
)

// PushDeals writes locally modified deals to the remote side. Up to 100
// deals go through one synchronous small batch; more become a bulk write
// job. Both are recorded as bulk_write sessions tagged with source=push.
func (b *bulkManager) PushDeals(ctx context.Context, deals []models.Deal, cutoff time.Time) (string, error) {
	metadata := map[string]any{
		models.MetadataSource:    models.SourcePush,
		models.MetadataWatermark: cutoff.UTC().Format(time.RFC3339Nano),
	}

	if len(deals) > models.SmallBatchLimit {
		req := models.BulkWriteRequest{Records: make([]models.BulkWriteRecord, 0, len(deals))}
		for _, d := range deals {
			op := models.BulkUpdate
			if d.RemoteID == "" {
				op = models.BulkInsert
			}
			req.Records = append(req.Records, models.BulkWriteRecord{Operation: op, Deal: d})
		}
		return b.submitBulkWrite(ctx, req, metadata)
	}

	return b.pushSmallBatch(ctx, deals, cutoff.UTC(), metadata)
}

func (b *bulkManager) pushSmallBatch(ctx context.Context, deals []models.Deal, cutoff time.Time, metadata map[string]any) (string, error) {
	metadata[models.MetadataMode] = models.ModeSmallBatch

	s, err := b.tracker.create(ctx, models.SyncKindBulkWrite, metadata)
	if err != nil {
		return "", fmt.Errorf("error creating push session: %w", err)
	}
	counter := new(adapter.CallCounter)
	ctx = adapter.WithCallCounter(ctx, counter)

	updates := make([]models.DealUpdate, 0, len(deals))
	for _, d := range deals {
		updates = append(updates, models.DealUpdate{RemoteID: d.RemoteID, Fields: d.FieldValues()})
		b.updateRecord(ctx, d.RemoteID, markPending)
	}

	results, err := b.crm.UpsertDeals(ctx, updates)
	if err != nil {
		b.failBatch(ctx, s, counter, err)
		return s.ID, err
	}
	if err := b.tracker.transition(ctx, s, models.SessionInProgress, "push batch sent", ""); err != nil {
		return s.ID, err
	}

	var failed int64
	for i, d := range deals {
		r := resultAt(results, i, i, d.RemoteID)
		if r.Status != models.BatchRecordSuccess {
			failed++
			if d.RemoteID != "" {
				b.updateRecord(ctx, d.RemoteID, markError(r.Message))
			}
			s.log.Warn().Int64("local_id", d.LocalID).Str("remote_id", d.RemoteID).Str("code", r.Code).Msg(r.Message)
			continue
		}

		if d.RemoteID == "" && r.RemoteID != "" && d.LocalID != 0 {
			if err := b.deals.AttachRemoteID(ctx, d.LocalID, r.RemoteID); err != nil {
				s.log.Err(err).Int64("local_id", d.LocalID).Str("remote_id", r.RemoteID).Msg("failed to attach remote id")
			}
		}

		localID := d.LocalID
		b.updateRecord(ctx, r.RemoteID, markSynced(&localID, d.LocalModifiedAt, cutoff))
	}

	b.finishBatch(ctx, s, counter, int64(len(deals)), failed)
	return s.ID, nil
}
