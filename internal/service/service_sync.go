// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/crm-deal-sync/internal/adapter"
	"github.com/MKhiriev/crm-deal-sync/internal/config"
	"github.com/MKhiriev/crm-deal-sync/internal/logger"
	"github.com/MKhiriev/crm-deal-sync/internal/metrics"
	"github.com/MKhiriev/crm-deal-sync/internal/store"
	"github.com/MKhiriev/crm-deal-sync/internal/validators"
	"github.com/MKhiriev/crm-deal-sync/models"
)

const interruptedByRestart = "interrupted by restart"

type syncOrchestrator struct {
	crm       adapter.CRMAdapter
	sessions  store.SessionRepository
	statuses  store.RecordStatusRepository
	conflicts store.ConflictLogRepository
	deals     store.DealRepository

	resolver ConflictResolver
	bulk     BulkManager
	pusher   DealPusher
	tracker  *sessionTracker
	records  *keyedMutex
	epoch    time.Time

	mu      sync.Mutex
	running map[models.SyncKind]string
	cancels map[string]*atomic.Bool
	closed  bool
	wg      sync.WaitGroup
	pushing sync.Mutex

	now    func() time.Time
	logger *logger.Logger
}

func newSyncOrchestrator(
	crm adapter.CRMAdapter,
	storages *store.Storages,
	resolver ConflictResolver,
	bulk BulkManager,
	pusher DealPusher,
	tracker *sessionTracker,
	records *keyedMutex,
	cfg config.Sync,
	log *logger.Logger,
) *syncOrchestrator {
	log = log.Component("orchestrator")

	epoch, err := cfg.EpochTime()
	if err != nil {
		log.Warn().Err(err).Str("epoch", cfg.Epoch).Msg("invalid sync epoch, using unix epoch")
		epoch = time.Unix(0, 0).UTC()
	}

	return &syncOrchestrator{
		crm:       crm,
		sessions:  storages.Sessions,
		statuses:  storages.RecordStatus,
		conflicts: storages.ConflictLog,
		deals:     storages.Deals,
		resolver:  resolver,
		bulk:      bulk,
		pusher:    pusher,
		tracker:   tracker,
		records:   records,
		epoch:     epoch,
		running:   make(map[models.SyncKind]string),
		cancels:   make(map[string]*atomic.Bool),
		now:       time.Now,
		logger:    log,
	}
}

func (o *syncOrchestrator) StartFullSync(ctx context.Context) (string, error) {
	return o.start(ctx, models.SyncKindFull)
}

func (o *syncOrchestrator) StartIncrementalSync(ctx context.Context) (string, error) {
	return o.start(ctx, models.SyncKindIncremental)
}

// start creates the session synchronously and runs it on a goroutine that
// outlives the caller's context.
func (o *syncOrchestrator) start(ctx context.Context, kind models.SyncKind) (string, error) {
	if err := o.reserve(kind); err != nil {
		return "", err
	}
	abort := func() {
		o.release(kind, "")
		o.wg.Done()
	}

	var since *time.Time
	metadata := make(map[string]any)
	if kind == models.SyncKindIncremental {
		w, err := o.watermark(ctx)
		if err != nil {
			abort()
			return "", err
		}
		since = &w
		metadata[models.MetadataWatermark] = w.Format(time.RFC3339Nano)
	}

	s, err := o.tracker.create(ctx, kind, metadata)
	if err != nil {
		abort()
		if errors.Is(err, store.ErrSessionAlreadyActive) {
			return "", ErrSyncAlreadyRunning
		}
		return "", fmt.Errorf("error creating %s session: %w", kind, err)
	}

	cancelled := new(atomic.Bool)
	o.mu.Lock()
	o.running[kind] = s.ID
	o.cancels[s.ID] = cancelled
	o.mu.Unlock()

	go func() {
		defer o.wg.Done()
		defer o.release(kind, s.ID)
		o.run(context.WithoutCancel(ctx), s, since, cancelled)
	}()

	return s.ID, nil
}

// reserve claims the kind slot and registers the future run with the wait
// group.
func (o *syncOrchestrator) reserve(kind models.SyncKind) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return ErrShuttingDown
	}
	if _, busy := o.running[kind]; busy {
		return ErrSyncAlreadyRunning
	}
	o.running[kind] = ""
	o.wg.Add(1)
	return nil
}

func (o *syncOrchestrator) release(kind models.SyncKind, sessionID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.running, kind)
	delete(o.cancels, sessionID)
}

// watermark returns the start time of the last completed incremental
// session, or the configured epoch. Deals edited remotely while that session
// paged past them are therefore fetched again by the next one.
func (o *syncOrchestrator) watermark(ctx context.Context) (time.Time, error) {
	last, err := o.sessions.LastCompletedSession(ctx, models.SyncKindIncremental)
	switch {
	case errors.Is(err, store.ErrSessionNotFound):
		return o.epoch, nil
	case err != nil:
		return time.Time{}, fmt.Errorf("error reading last completed session: %w", err)
	case last.CompletedAt == nil || last.StartedAt.IsZero():
		return o.epoch, nil
	}
	return last.StartedAt.UTC(), nil
}

func (o *syncOrchestrator) run(ctx context.Context, s *trackedSession, since *time.Time, cancelled *atomic.Bool) {
	counter := new(adapter.CallCounter)
	ctx = adapter.WithCallCounter(s.log.WithContext(ctx), counter)

	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Msg("sync session panicked")
			o.tracker.fail(ctx, s, fmt.Errorf("panic: %v", r))
		}
	}()

	pager := o.crm.ListDeals(adapter.ListOptions{ModifiedSince: since})

	var processed int64
	for !pager.Done() {
		if cancelled.Load() {
			msg := fmt.Sprintf("session cancelled after %d pages", pager.Pages())
			if err := o.tracker.transition(ctx, s, models.SessionCancelled, msg, ""); err != nil {
				s.log.Err(err).Msg("failed to cancel session")
			}
			return
		}

		deals, err := pager.Next(ctx)
		if err != nil {
			o.tracker.fail(ctx, s, fmt.Errorf("fetching page %d: %w", pager.Pages()+1, err))
			return
		}

		if s.Status == models.SessionPending {
			if err := o.tracker.transition(ctx, s, models.SessionInProgress, "first page received", ""); err != nil {
				o.tracker.fail(ctx, s, fmt.Errorf("starting session: %w", err))
				return
			}
		}

		if err := o.applyPage(ctx, s, deals); err != nil {
			o.tracker.fail(ctx, s, err)
			return
		}

		processed += int64(len(deals))
		o.tracker.progress(ctx, s, models.SessionProgress{
			RecordsTotal:     processed,
			RecordsProcessed: processed,
			APICallsMade:     counter.Load(),
		}, fmt.Sprintf("page %d applied", pager.Pages()), int64(len(deals)))
		_ = o.tracker.setMetadata(ctx, s, map[string]any{
			models.MetadataCursor: pager.Cursor(),
			models.MetadataPages:  pager.Pages(),
		})
	}

	msg := fmt.Sprintf("sync completed, %d records", processed)
	if err := o.tracker.transition(ctx, s, models.SessionCompleted, msg, ""); err != nil {
		s.log.Err(err).Msg("failed to complete session")
	}
}

// applyPage applies the deals of one page in the order the remote returned
// them. Any store failure is fatal to the session.
func (o *syncOrchestrator) applyPage(ctx context.Context, s *trackedSession, deals []models.Deal) error {
	for _, deal := range deals {
		if deal.RemoteID == "" {
			s.log.Warn().Str("deal_name", deal.Name).Msg("skipping remote deal without id")
			continue
		}
		if _, err := o.applyRemote(ctx, s.ID, deal); err != nil {
			return fmt.Errorf("applying deal %s: %w", deal.RemoteID, err)
		}
	}
	return nil
}

// applyRemote reconciles one remote deal with its local copy and writes the
// resulting record status. Writes for one remote id are serialized.
func (o *syncOrchestrator) applyRemote(ctx context.Context, sessionID string, remote models.Deal) (models.RecordSyncStatus, error) {
	unlock := o.records.Lock(remote.RemoteID)
	defer unlock()

	now := o.now().UTC()

	prev, err := o.recordStatus(ctx, remote.RemoteID)
	if err != nil {
		return models.RecordSyncStatus{}, err
	}

	local, err := o.deals.GetByRemoteID(ctx, remote.RemoteID)
	if errors.Is(err, store.ErrDealNotFound) {
		return o.acceptRemote(ctx, remote, now)
	}
	if err != nil {
		return models.RecordSyncStatus{}, fmt.Errorf("error loading local deal: %w", err)
	}

	// replays of an already applied remote version change nothing
	if prev != nil && sameInstant(prev.RemoteModifiedAt, remote.RemoteModifiedAt) {
		switch prev.SyncStatus {
		case models.RecordConflict:
			return *prev, nil
		case models.RecordSynced:
			if !changedLocally(local, prev) && len(models.DiffFields(local, remote)) == 0 {
				return *prev, nil
			}
		}
	}

	outcome := o.resolver.Resolve(local, remote, prev)
	if outcome.Kind != models.OutcomeNoConflict {
		o.logConflict(ctx, sessionID, remote.RemoteID, outcome, now)
	}

	pending := models.RecordSyncStatus{
		RemoteRecordID:   remote.RemoteID,
		LocalRecordID:    &local.LocalID,
		SyncStatus:       models.RecordPending,
		LastSyncAt:       lastSyncOf(prev),
		LocalModifiedAt:  local.LocalModifiedAt,
		RemoteModifiedAt: remote.RemoteModifiedAt,
	}

	switch {
	case outcome.Kind == models.OutcomeUnresolved:
		pending.ConflictFields = outcome.FieldNames()
		return o.writeStatus(ctx, pending)

	case outcome.WinningSide == models.SideLocal:
		return o.writeStatus(ctx, pending)

	case outcome.WinningSide == models.SideMixed:
		saved, err := o.deals.SaveLocal(ctx, outcome.Merged, now)
		if err != nil {
			return models.RecordSyncStatus{}, fmt.Errorf("error saving merged deal: %w", err)
		}
		pending.LocalModifiedAt = saved.LocalModifiedAt
		return o.writeStatus(ctx, pending)

	default:
		return o.acceptRemote(ctx, outcome.Merged, now)
	}
}

// acceptRemote stores deal as received and marks it synced at now.
func (o *syncOrchestrator) acceptRemote(ctx context.Context, deal models.Deal, now time.Time) (models.RecordSyncStatus, error) {
	saved, err := o.deals.Upsert(ctx, deal)
	if err != nil {
		return models.RecordSyncStatus{}, fmt.Errorf("error upserting deal: %w", err)
	}

	return o.writeStatus(ctx, models.RecordSyncStatus{
		RemoteRecordID:   deal.RemoteID,
		LocalRecordID:    &saved.LocalID,
		SyncStatus:       models.RecordSynced,
		LastSyncAt:       &now,
		LocalModifiedAt:  saved.LocalModifiedAt,
		RemoteModifiedAt: deal.RemoteModifiedAt,
	})
}

func (o *syncOrchestrator) writeStatus(ctx context.Context, status models.RecordSyncStatus) (models.RecordSyncStatus, error) {
	status = status.Normalize()
	if err := o.statuses.UpsertRecordStatus(ctx, status); err != nil {
		return models.RecordSyncStatus{}, fmt.Errorf("error writing record status: %w", err)
	}
	return status, nil
}

func (o *syncOrchestrator) recordStatus(ctx context.Context, remoteID string) (*models.RecordSyncStatus, error) {
	status, err := o.statuses.GetRecordStatus(ctx, remoteID)
	if errors.Is(err, store.ErrRecordStatusNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading record status: %w", err)
	}
	return &status, nil
}

func (o *syncOrchestrator) logConflict(ctx context.Context, sessionID, remoteID string, outcome models.ResolutionOutcome, now time.Time) {
	entry := models.ConflictLogEntry{
		RemoteRecordID: remoteID,
		SessionID:      sessionID,
		Outcome:        outcome.Kind,
		WinningSide:    outcome.WinningSide,
		Fields:         outcome.Fields,
		DetectedAt:     now,
	}
	if outcome.Kind == models.OutcomeAutoResolved {
		entry.ResolvedAt = &now
		entry.Resolution = "auto:" + string(outcome.WinningSide)
	}

	metrics.RecordConflict(string(outcome.Kind))
	if err := o.conflicts.AppendConflict(ctx, entry); err != nil {
		o.logger.Err(err).Str("remote_id", remoteID).Msg("failed to append conflict log entry")
	}
}

func (o *syncOrchestrator) RefreshRecord(ctx context.Context, remoteID string) (models.RecordSyncStatus, error) {
	if remoteID == "" {
		return models.RecordSyncStatus{}, validators.ErrEmptyRemoteID
	}

	deal, err := o.crm.GetDeal(ctx, remoteID)
	if err != nil {
		return models.RecordSyncStatus{}, err
	}
	return o.applyRemote(ctx, "", deal)
}

func (o *syncOrchestrator) GetSessionStatus(ctx context.Context, sessionID string) (models.SyncSession, error) {
	return o.sessions.GetSession(ctx, sessionID)
}

func (o *syncOrchestrator) ListSessions(ctx context.Context, kind models.SyncKind, status models.SessionStatus, limit uint64) ([]models.SyncSession, error) {
	return o.sessions.ListSessions(ctx, store.SessionFilter{Kind: kind, Status: status, Limit: limit})
}

func (o *syncOrchestrator) SessionLog(ctx context.Context, sessionID string) ([]models.SyncStatusLogEntry, error) {
	return o.sessions.ListLog(ctx, sessionID)
}

func (o *syncOrchestrator) CancelSession(ctx context.Context, sessionID string) error {
	o.mu.Lock()
	flag, running := o.cancels[sessionID]
	o.mu.Unlock()

	if running {
		flag.Store(true)
		o.logger.Info().Str("session_id", sessionID).Msg("cancellation requested")
		return nil
	}

	s, err := o.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if s.Status.IsTerminal() || s.Kind == models.SyncKindMassUpdate || s.Kind == models.SyncKindBulkWrite {
		return ErrSessionNotCancellable
	}

	// left behind by another process
	return o.tracker.transition(ctx, o.tracker.attach(s), models.SessionCancelled, "session cancelled", "")
}

func (o *syncOrchestrator) RecoverStaleSessions(ctx context.Context) error {
	active, err := o.sessions.ListActiveSessions(ctx)
	if err != nil {
		return fmt.Errorf("error listing active sessions: %w", err)
	}

	var errs []error
	for _, s := range active {
		if o.isRunning(s.ID) {
			continue
		}

		isBulk := s.Kind == models.SyncKindMassUpdate || s.Kind == models.SyncKindBulkWrite
		if isBulk && s.JobID() != "" {
			o.bulk.ResumePolling(ctx, s)
			continue
		}

		ts := o.tracker.attach(s)
		if err := o.tracker.transition(ctx, ts, models.SessionFailed, interruptedByRestart, interruptedByRestart); err != nil {
			errs = append(errs, fmt.Errorf("session %s: %w", s.ID, err))
		}
	}

	o.logger.Info().Int("sessions", len(active)).Msg("stale sessions recovered")
	return errors.Join(errs...)
}

func (o *syncOrchestrator) isRunning(sessionID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.cancels[sessionID]
	return ok
}

// Shutdown cancels running sessions, which stop at their next page
// boundary, and waits for them and the bulk pollers.
func (o *syncOrchestrator) Shutdown(ctx context.Context) error {
	o.mu.Lock()
	o.closed = true
	for _, flag := range o.cancels {
		flag.Store(true)
	}
	o.mu.Unlock()

	done := make(chan struct{})
	go func() {
		o.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return o.bulk.Shutdown(ctx)
}

func lastSyncOf(prev *models.RecordSyncStatus) *time.Time {
	if prev == nil {
		return nil
	}
	return prev.LastSyncAt
}

func sameInstant(a, b *time.Time) bool {
	return a != nil && b != nil && a.Equal(*b)
}
