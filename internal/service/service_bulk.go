// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/MKhiriev/crm-deal-sync/internal/adapter"
	"github.com/MKhiriev/crm-deal-sync/internal/config"
	"github.com/MKhiriev/crm-deal-sync/internal/logger"
	"github.com/MKhiriev/crm-deal-sync/internal/metrics"
	"github.com/MKhiriev/crm-deal-sync/internal/store"
	"github.com/MKhiriev/crm-deal-sync/internal/validators"
	"github.com/MKhiriev/crm-deal-sync/models"
)

// pollMaxErrors is the number of consecutive failed status checks after
// which a job session is failed.
const pollMaxErrors = 3

type bulkManager struct {
	crm       adapter.CRMAdapter
	sessions  store.SessionRepository
	statuses  store.RecordStatusRepository
	deals     store.DealRepository
	validator validators.Validator
	tracker   *sessionTracker
	records   *keyedMutex
	jobs      *keyedMutex

	pollInterval    time.Duration
	maxPollDuration time.Duration
	sleep           func(ctx context.Context, d time.Duration) error
	now             func() time.Time

	pollCtx   context.Context
	stopPolls context.CancelFunc
	mu        sync.Mutex
	closed    bool
	wg        sync.WaitGroup

	logger *logger.Logger
}

func newBulkManager(
	crm adapter.CRMAdapter,
	storages *store.Storages,
	tracker *sessionTracker,
	records *keyedMutex,
	cfg config.Bulk,
	log *logger.Logger,
) *bulkManager {
	pollCtx, stop := context.WithCancel(context.Background())

	return &bulkManager{
		crm:             crm,
		sessions:        storages.Sessions,
		statuses:        storages.RecordStatus,
		deals:           storages.Deals,
		validator:       validators.NewDealValidator(),
		tracker:         tracker,
		records:         records,
		jobs:            newKeyedMutex(),
		pollInterval:    positiveOr(cfg.PollInterval, config.DefaultPollInterval),
		maxPollDuration: positiveOr(cfg.MaxPollDuration, config.DefaultMaxPollDuration),
		sleep:           sleepContext,
		now:             time.Now,
		pollCtx:         pollCtx,
		stopPolls:       stop,
		logger:          log.Component("bulk-manager"),
	}
}

// ─────────────────────────────────────────────
// Small batch
// ─────────────────────────────────────────────

// SubmitSmallBatch writes up to 100 updates synchronously. Every record is
// validated on its own: an invalid record is reported in its result slot and
// the rest of the batch is still sent.
func (b *bulkManager) SubmitSmallBatch(ctx context.Context, updates []models.DealUpdate) (models.BatchResult, error) {
	s, err := b.tracker.create(ctx, models.SyncKindBulkWrite, map[string]any{models.MetadataMode: models.ModeSmallBatch})
	if err != nil {
		return models.BatchResult{}, fmt.Errorf("error creating batch session: %w", err)
	}
	counter := new(adapter.CallCounter)
	ctx = adapter.WithCallCounter(ctx, counter)

	result := models.BatchResult{SessionID: s.ID, Results: make([]models.BatchRecordResult, len(updates))}

	valid := make([]models.DealUpdate, 0, len(updates))
	index := make([]int, 0, len(updates))
	for i, u := range updates {
		if err := b.validator.Validate(ctx, u); err != nil {
			result.Results[i] = models.BatchRecordResult{
				Index:    i,
				RemoteID: u.RemoteID,
				Status:   models.BatchRecordError,
				Code:     "INVALID_DATA",
				Message:  err.Error(),
			}
			continue
		}
		valid = append(valid, u)
		index = append(index, i)
	}

	if len(valid) > 0 {
		remote, err := b.crm.UpsertDeals(ctx, valid)
		if err != nil {
			b.failBatch(ctx, s, counter, err)
			return result, err
		}
		for j, u := range valid {
			result.Results[index[j]] = resultAt(remote, j, index[j], u.RemoteID)
		}
	}

	if err := b.tracker.transition(ctx, s, models.SessionInProgress, "batch sent", ""); err != nil {
		return result, err
	}

	for i, r := range result.Results {
		if r.Status == models.BatchRecordSuccess {
			result.Succeeded++
			b.updateRecord(ctx, r.RemoteID, markPending)
			continue
		}
		result.Failed++
		if r.RemoteID != "" {
			b.updateRecord(ctx, r.RemoteID, markError(r.Message))
		}
		s.log.Warn().Int("index", i).Str("remote_id", r.RemoteID).Str("code", r.Code).Msg(r.Message)
	}

	b.finishBatch(ctx, s, counter, int64(len(updates)), int64(result.Failed))
	return result, nil
}

// resultAt returns the remote result of the j-th sent record, reindexed to
// its position in the caller's batch.
func resultAt(remote []models.BatchRecordResult, j, index int, remoteID string) models.BatchRecordResult {
	if j >= len(remote) {
		return models.BatchRecordResult{
			Index:    index,
			RemoteID: remoteID,
			Status:   models.BatchRecordError,
			Message:  "no result returned for record",
		}
	}
	r := remote[j]
	r.Index = index
	if r.RemoteID == "" {
		r.RemoteID = remoteID
	}
	return r
}

func (b *bulkManager) failBatch(ctx context.Context, s *trackedSession, counter *adapter.CallCounter, cause error) {
	b.tracker.addCalls(ctx, s, counter.Load())
	b.tracker.fail(ctx, s, cause)
	metrics.RecordBulkJob(models.ModeSmallBatch, string(models.SessionFailed))
}

func (b *bulkManager) finishBatch(ctx context.Context, s *trackedSession, counter *adapter.CallCounter, total, failed int64) {
	_ = b.tracker.setMetadata(ctx, s, map[string]any{
		models.MetadataFailedCount: failed,
		models.MetadataSucceeded:   total - failed,
	})
	b.tracker.progress(ctx, s, models.SessionProgress{
		RecordsTotal:     total,
		RecordsProcessed: total,
		APICallsMade:     s.APICallsMade + counter.Load(),
	}, fmt.Sprintf("batch applied, %d failed", failed), total)

	if err := b.tracker.transition(ctx, s, models.SessionCompleted, "batch completed", ""); err != nil {
		return
	}
	metrics.RecordBulkJob(models.ModeSmallBatch, string(models.SessionCompleted))
}

// ─────────────────────────────────────────────
// Asynchronous jobs
// ─────────────────────────────────────────────

func (b *bulkManager) SubmitMassUpdate(ctx context.Context, req models.MassUpdateRequest) (string, error) {
	s, err := b.tracker.create(ctx, models.SyncKindMassUpdate, nil)
	if err != nil {
		return "", fmt.Errorf("error creating mass update session: %w", err)
	}

	b.tracker.progress(ctx, s, models.SessionProgress{RecordsTotal: int64(len(req.RemoteIDs))}, "mass update accepted", int64(len(req.RemoteIDs)))

	counter := new(adapter.CallCounter)
	jobID, err := b.crm.SubmitMassUpdate(adapter.WithCallCounter(ctx, counter), req)
	b.tracker.addCalls(ctx, s, counter.Load())
	if err != nil {
		b.tracker.fail(ctx, s, err)
		metrics.RecordBulkJob(string(s.Kind), string(models.SessionFailed))
		return s.ID, err
	}

	if err := b.submitted(ctx, s, jobID); err != nil {
		return s.ID, err
	}
	for _, id := range req.RemoteIDs {
		b.updateRecord(ctx, id, markPending)
	}

	b.startPoller(s.SyncSession)
	return s.ID, nil
}

func (b *bulkManager) SubmitBulkWrite(ctx context.Context, req models.BulkWriteRequest) (string, error) {
	return b.submitBulkWrite(ctx, req, nil)
}

// submitBulkWrite starts a bulk write job. Rows that create deals with a
// known local id are remembered in the session metadata so the remote ids
// from the result artifact can be attached to them.
func (b *bulkManager) submitBulkWrite(ctx context.Context, req models.BulkWriteRequest, extra map[string]any) (string, error) {
	metadata := make(map[string]any, len(extra)+1)
	for k, v := range extra {
		metadata[k] = v
	}

	inserts := make(map[string]any)
	remoteIDs := make([]string, 0, len(req.Records))
	for i, r := range req.Records {
		if r.Deal.RemoteID != "" {
			remoteIDs = append(remoteIDs, r.Deal.RemoteID)
			continue
		}
		if r.Deal.LocalID != 0 {
			inserts[strconv.Itoa(i+1)] = r.Deal.LocalID
		}
	}
	if len(inserts) > 0 {
		metadata[models.MetadataInsertRows] = inserts
	}

	s, err := b.tracker.create(ctx, models.SyncKindBulkWrite, metadata)
	if err != nil {
		return "", fmt.Errorf("error creating bulk write session: %w", err)
	}

	b.tracker.progress(ctx, s, models.SessionProgress{RecordsTotal: int64(len(req.Records))}, "bulk write accepted", int64(len(req.Records)))

	counter := new(adapter.CallCounter)
	jobID, err := b.crm.SubmitBulkWrite(adapter.WithCallCounter(ctx, counter), req)
	b.tracker.addCalls(ctx, s, counter.Load())
	if err != nil {
		b.tracker.fail(ctx, s, err)
		metrics.RecordBulkJob(string(s.Kind), string(models.SessionFailed))
		return s.ID, err
	}

	if err := b.submitted(ctx, s, jobID); err != nil {
		return s.ID, err
	}
	for _, id := range remoteIDs {
		b.updateRecord(ctx, id, markPending)
	}

	b.startPoller(s.SyncSession)
	return s.ID, nil
}

func (b *bulkManager) submitted(ctx context.Context, s *trackedSession, jobID string) error {
	if err := b.tracker.setMetadata(ctx, s, map[string]any{models.MetadataJobID: jobID}); err != nil {
		b.tracker.fail(ctx, s, err)
		return err
	}
	return b.tracker.transition(ctx, s, models.SessionInProgress, "job "+jobID+" submitted", "")
}

// CheckJobStatus polls the remote job once. Checks of the same session are
// serialized so that a terminal state is applied exactly once.
func (b *bulkManager) CheckJobStatus(ctx context.Context, sessionID string) (models.BulkStatus, error) {
	unlock := b.jobs.Lock(sessionID)
	defer unlock()

	stored, err := b.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return models.BulkStatus{}, err
	}
	if !isBulkKind(stored.Kind) {
		return models.BulkStatus{}, ErrNotBulkSession
	}
	if stored.Status.IsTerminal() || stored.JobID() == "" {
		return bulkStatusOf(stored), nil
	}

	s := b.tracker.attach(stored)
	counter := new(adapter.CallCounter)
	ctx = adapter.WithCallCounter(s.log.WithContext(ctx), counter)

	remote, err := b.pollRemote(ctx, s)
	if err != nil {
		b.tracker.addCalls(ctx, s, counter.Load())
		return bulkStatusOf(s.SyncSession), err
	}

	if s.Status == models.SessionPending {
		if err := b.tracker.transition(ctx, s, models.SessionInProgress, "job running", ""); err != nil {
			return bulkStatusOf(s.SyncSession), err
		}
	}

	changed := remote.Processed != s.RecordsProcessed || string(remote.State) != metadataString(s.Metadata, models.MetadataRemoteStatus)
	total := remote.Total
	if total == 0 {
		total = s.RecordsTotal
	}
	if changed {
		b.tracker.progress(ctx, s, models.SessionProgress{
			RecordsTotal:     total,
			RecordsProcessed: remote.Processed,
			APICallsMade:     s.APICallsMade + counter.Load(),
		}, fmt.Sprintf("job %s %s", remote.JobID, remote.State), remote.Processed)
		_ = b.tracker.setMetadata(ctx, s, map[string]any{models.MetadataRemoteStatus: string(remote.State)})
	} else {
		b.tracker.addCalls(ctx, s, counter.Load())
	}
	polled := counter.Load()

	switch remote.State {
	case models.JobCompleted:
		err = b.complete(ctx, s, remote)
	case models.JobFailed:
		detail := remote.ErrorDetail
		if detail == "" {
			detail = "remote job failed"
		}
		_ = b.tracker.setMetadata(ctx, s, map[string]any{models.MetadataFailedCount: remote.Failed})
		err = b.tracker.transition(ctx, s, models.SessionFailed, "job failed: "+detail, detail)
		metrics.RecordBulkJob(string(s.Kind), string(models.SessionFailed))
	}
	// result download
	b.tracker.addCalls(ctx, s, counter.Load()-polled)

	return bulkStatusOf(s.SyncSession), err
}

func (b *bulkManager) pollRemote(ctx context.Context, s *trackedSession) (models.RemoteJobStatus, error) {
	if s.Kind == models.SyncKindMassUpdate {
		return b.crm.GetMassUpdateStatus(ctx, s.JobID())
	}
	return b.crm.GetBulkWriteStatus(ctx, s.JobID())
}

func (b *bulkManager) complete(ctx context.Context, s *trackedSession, remote models.RemoteJobStatus) error {
	failed := remote.Failed
	if s.Kind == models.SyncKindBulkWrite && remote.ResultURL != "" {
		results, err := b.crm.DownloadBulkResult(ctx, remote.ResultURL)
		if err != nil {
			// the session stays in progress and the next check downloads again
			return fmt.Errorf("error downloading job result: %w", err)
		}
		failed = b.applyBulkResults(ctx, s, results)
	}

	succeeded := remote.Processed - failed
	if succeeded < 0 {
		succeeded = 0
	}
	_ = b.tracker.setMetadata(ctx, s, map[string]any{
		models.MetadataFailedCount: failed,
		models.MetadataSucceeded:   succeeded,
	})

	msg := fmt.Sprintf("job completed, %d failed", failed)
	if err := b.tracker.transition(ctx, s, models.SessionCompleted, msg, ""); err != nil {
		return err
	}
	metrics.RecordBulkJob(string(s.Kind), string(models.SessionCompleted))
	return nil
}

// applyBulkResults writes the per-record outcome of a bulk write. Rows of a
// push become synced as of the push cutoff; rows written on behalf of an
// operator stay pending until the next incremental sync reads them back.
func (b *bulkManager) applyBulkResults(ctx context.Context, s *trackedSession, results []models.BulkRecordResult) int64 {
	push := metadataString(s.Metadata, models.MetadataSource) == models.SourcePush
	syncedAt := b.now().UTC()
	if raw := metadataString(s.Metadata, models.MetadataWatermark); raw != "" {
		if at, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			syncedAt = at
		}
	}
	inserts, _ := s.Metadata[models.MetadataInsertRows].(map[string]any)

	var failed int64
	for _, r := range results {
		localID := toInt64(inserts[strconv.Itoa(r.Row)])

		if !r.Succeeded() {
			failed++
			if r.RemoteID != "" {
				b.updateRecord(ctx, r.RemoteID, markError(r.Error))
			} else {
				s.log.Warn().Int("row", r.Row).Int64("local_id", localID).Str("error", r.Error).Msg("bulk write row failed")
			}
			continue
		}
		if r.RemoteID == "" {
			continue
		}

		if localID != 0 {
			if err := b.deals.AttachRemoteID(ctx, localID, r.RemoteID); err != nil {
				s.log.Err(err).Int64("local_id", localID).Str("remote_id", r.RemoteID).Msg("failed to attach remote id")
			}
		}

		if !push {
			b.updateRecord(ctx, r.RemoteID, markPending)
			continue
		}
		var lid *int64
		if localID != 0 {
			lid = &localID
		}
		b.updateRecord(ctx, r.RemoteID, markSynced(lid, nil, syncedAt))
	}
	return failed
}

func (b *bulkManager) GetBulkStatus(ctx context.Context, sessionID string) (models.BulkStatus, error) {
	s, err := b.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return models.BulkStatus{}, err
	}
	if !isBulkKind(s.Kind) {
		return models.BulkStatus{}, ErrNotBulkSession
	}
	return bulkStatusOf(s), nil
}

// ─────────────────────────────────────────────
// Pollers
// ─────────────────────────────────────────────

func (b *bulkManager) ResumePolling(_ context.Context, session models.SyncSession) {
	b.logger.Info().Str("session_id", session.ID).Str("job_id", session.JobID()).Msg("resuming job polling")
	b.startPoller(session)
}

func (b *bulkManager) startPoller(s models.SyncSession) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.wg.Add(1)
	go b.poll(s)
}

// poll checks the job of s every poll interval until the session reaches a
// terminal state, the poll deadline passes or the manager shuts down.
func (b *bulkManager) poll(s models.SyncSession) {
	defer b.wg.Done()

	log := b.logger.ForSession(s.ID, string(s.Kind))
	ctx := log.WithContext(b.pollCtx)
	deadline := s.StartedAt.Add(b.maxPollDuration)

	failures := 0
	for {
		if err := b.sleep(ctx, b.pollInterval); err != nil {
			log.Debug().Msg("poller stopped")
			return
		}

		status, err := b.CheckJobStatus(ctx, s.ID)
		switch {
		case ctx.Err() != nil:
			return
		case err != nil:
			failures++
			log.Warn().Err(err).Int("failures", failures).Msg("job status check failed")
			if failures >= pollMaxErrors {
				b.failSession(ctx, s.ID, err)
				return
			}
		case status.Status.IsTerminal():
			return
		default:
			failures = 0
		}

		if !b.now().Before(deadline) {
			b.failSession(ctx, s.ID, fmt.Errorf("%w: exceeded %s", ErrJobTimeout, b.maxPollDuration))
			return
		}
	}
}

func (b *bulkManager) failSession(ctx context.Context, sessionID string, cause error) {
	unlock := b.jobs.Lock(sessionID)
	defer unlock()

	stored, err := b.sessions.GetSession(ctx, sessionID)
	if err != nil {
		b.logger.Err(err).Str("session_id", sessionID).Msg("failed to load session")
		return
	}
	if stored.Status.IsTerminal() {
		return
	}
	b.tracker.fail(ctx, b.tracker.attach(stored), cause)
	metrics.RecordBulkJob(string(stored.Kind), string(models.SessionFailed))
}

func (b *bulkManager) Shutdown(ctx context.Context) error {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	b.stopPolls()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ─────────────────────────────────────────────
// Record status helpers
// ─────────────────────────────────────────────

// statusChange derives the next status of a record from its current one.
// Returning false leaves the record untouched.
type statusChange func(current models.RecordSyncStatus) (models.RecordSyncStatus, bool)

// updateRecord applies change to the status of remoteID under the record lock.
func (b *bulkManager) updateRecord(ctx context.Context, remoteID string, change statusChange) {
	if remoteID == "" {
		return
	}
	unlock := b.records.Lock(remoteID)
	defer unlock()

	current, err := b.statuses.GetRecordStatus(ctx, remoteID)
	switch {
	case errors.Is(err, store.ErrRecordStatusNotFound):
		current = models.RecordSyncStatus{RemoteRecordID: remoteID}
	case err != nil:
		b.logger.Err(err).Str("remote_id", remoteID).Msg("failed to read record status")
		return
	}

	next, ok := change(current)
	if !ok {
		return
	}
	if err := b.statuses.UpsertRecordStatus(ctx, next.Normalize()); err != nil {
		b.logger.Err(err).Str("remote_id", remoteID).Msg("failed to write record status")
	}
}

// Unresolved conflicts are only cleared by an explicit override.

func markPending(current models.RecordSyncStatus) (models.RecordSyncStatus, bool) {
	if current.SyncStatus == models.RecordConflict {
		return current, false
	}
	current.SyncStatus = models.RecordPending
	current.ErrorDetails = ""
	return current, true
}

func markError(detail string) statusChange {
	return func(current models.RecordSyncStatus) (models.RecordSyncStatus, bool) {
		if current.SyncStatus == models.RecordConflict {
			return current, false
		}
		current.SyncStatus = models.RecordError
		current.ErrorDetails = detail
		return current, true
	}
}

func markSynced(localID *int64, localModifiedAt *time.Time, at time.Time) statusChange {
	return func(current models.RecordSyncStatus) (models.RecordSyncStatus, bool) {
		if current.SyncStatus == models.RecordConflict {
			return current, false
		}
		current.SyncStatus = models.RecordSynced
		current.ErrorDetails = ""
		current.LastSyncAt = &at
		if localID != nil {
			current.LocalRecordID = localID
		}
		if localModifiedAt != nil {
			current.LocalModifiedAt = localModifiedAt
		}
		return current, true
	}
}

func isBulkKind(kind models.SyncKind) bool {
	return kind == models.SyncKindMassUpdate || kind == models.SyncKindBulkWrite
}

func bulkStatusOf(s models.SyncSession) models.BulkStatus {
	return models.BulkStatus{
		SessionID:        s.ID,
		Kind:             s.Kind,
		Status:           s.Status,
		RecordsTotal:     s.RecordsTotal,
		RecordsProcessed: s.RecordsProcessed,
		Failed:           metadataInt(s.Metadata, models.MetadataFailedCount),
		Error:            s.ErrorMessage,
	}
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int64:
		return n
	case float64:
		return int64(n)
	}
	return 0
}

func positiveOr(d, fallback time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return fallback
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
