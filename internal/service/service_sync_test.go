package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/crm-deal-sync/internal/adapter"
	"github.com/MKhiriev/crm-deal-sync/internal/config"
	"github.com/MKhiriev/crm-deal-sync/internal/logger"
	"github.com/MKhiriev/crm-deal-sync/internal/mock"
	"github.com/MKhiriev/crm-deal-sync/internal/validators"
	"github.com/MKhiriev/crm-deal-sync/models"
)

var syncStart = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

type orchestratorFixture struct {
	crm   *mock.MockCRMAdapter
	store *memStore
	clock *testClock
	bulk  *bulkManager
	o     *syncOrchestrator
}

func newOrchestratorFixture(t *testing.T, cfg config.Sync) *orchestratorFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	crm := mock.NewMockCRMAdapter(ctrl)
	ms := newMemStore()
	clock := newTestClock(syncStart)

	tracker := newSessionTracker(ms.sessions, clock.Now, logger.Nop())
	records := newKeyedMutex()

	bulk := newBulkManager(crm, ms.storages(), tracker, records, config.Bulk{}, logger.Nop())
	bulk.now = clock.Now

	o := newSyncOrchestrator(crm, ms.storages(), NewConflictResolver(cfg), bulk, bulk, tracker, records, cfg, logger.Nop())
	o.now = clock.Now

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = o.Shutdown(ctx)
	})

	return &orchestratorFixture{crm: crm, store: ms, clock: clock, bulk: bulk, o: o}
}

// waitFinished blocks until the session is terminal and its goroutine
// released the kind slot.
func (f *orchestratorFixture) waitFinished(t *testing.T, id string) models.SyncSession {
	t.Helper()
	require.Eventually(t, func() bool {
		return f.store.sessions.get(id).Status.IsTerminal() && !f.o.isRunning(id)
	}, 2*time.Second, 5*time.Millisecond)
	return f.store.sessions.get(id)
}

// expectListing serves pages through a real pager once per ListDeals call.
func (f *orchestratorFixture) expectListing(times int, pages ...[]models.Deal) {
	f.crm.EXPECT().ListDeals(gomock.Any()).
		DoAndReturn(func(adapter.ListOptions) *adapter.Pager[models.Deal] {
			return adapter.NewPager(pagedFetcher(pages...), "")
		}).
		Times(times)
}

func pagedFetcher(pages ...[]models.Deal) adapter.PageFetcher[models.Deal] {
	return func(_ context.Context, token string) (adapter.Page[models.Deal], error) {
		idx := 0
		if token != "" {
			idx, _ = strconv.Atoi(token)
		}
		page := adapter.Page[models.Deal]{Items: pages[idx]}
		if idx+1 < len(pages) {
			page.NextToken = strconv.Itoa(idx + 1)
		}
		return page, nil
	}
}

func remoteDeals(from, n int, modified time.Time) []models.Deal {
	out := make([]models.Deal, 0, n)
	for i := from; i < from+n; i++ {
		out = append(out, testDeal(fmt.Sprintf("d-%03d", i), modified))
	}
	return out
}

// blockingListing returns a pager whose first fetch waits for release.
func blockingListing(entered chan<- struct{}, release <-chan struct{}, pages ...[]models.Deal) func(adapter.ListOptions) *adapter.Pager[models.Deal] {
	inner := pagedFetcher(pages...)
	return func(adapter.ListOptions) *adapter.Pager[models.Deal] {
		var once sync.Once
		return adapter.NewPager(func(ctx context.Context, token string) (adapter.Page[models.Deal], error) {
			once.Do(func() {
				close(entered)
				<-release
			})
			return inner(ctx, token)
		}, "")
	}
}

// ─────────────────────────────────────────────
// Full sync
// ─────────────────────────────────────────────

func TestFullSync_AppliesEveryPage(t *testing.T) {
	f := newOrchestratorFixture(t, config.Sync{})
	modified := syncStart.Add(-time.Hour)
	f.expectListing(1, remoteDeals(1, 200, modified), remoteDeals(201, 50, modified))

	id, err := f.o.StartFullSync(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	s := f.waitFinished(t, id)
	assert.Equal(t, models.SessionCompleted, s.Status)
	assert.Equal(t, int64(250), s.RecordsProcessed)
	assert.Equal(t, int64(250), s.RecordsTotal)
	assert.Equal(t, int64(2), metadataInt(s.Metadata, models.MetadataPages))
	assert.Equal(t, 250, f.store.deals.count())

	counts, err := f.store.statuses.CountRecordStatuses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(250), counts.Total)
	assert.Equal(t, int64(250), counts.Synced)

	f.store.sessions.mu.Lock()
	progress := append([]models.SessionProgress(nil), f.store.sessions.progress...)
	f.store.sessions.mu.Unlock()
	require.Len(t, progress, 2)
	assert.Equal(t, int64(200), progress[0].RecordsProcessed)
	assert.Equal(t, int64(250), progress[1].RecordsProcessed)

	log, err := f.o.SessionLog(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.SessionCompleted, log[len(log)-1].Status)
}

func TestFullSync_EmptyListingCompletes(t *testing.T) {
	f := newOrchestratorFixture(t, config.Sync{})
	f.expectListing(1, []models.Deal{})

	id, err := f.o.StartFullSync(context.Background())
	require.NoError(t, err)

	s := f.waitFinished(t, id)
	assert.Equal(t, models.SessionCompleted, s.Status)
	assert.Zero(t, s.RecordsProcessed)
}

func TestFullSync_ReplayIsIdempotent(t *testing.T) {
	f := newOrchestratorFixture(t, config.Sync{})
	deals := remoteDeals(1, 30, syncStart.Add(-time.Hour))
	f.expectListing(2, deals)

	first, err := f.o.StartFullSync(context.Background())
	require.NoError(t, err)
	f.waitFinished(t, first)

	before := f.store.statuses.get("d-007")
	f.store.statuses.mu.Lock()
	writes := f.store.statuses.writes
	f.store.statuses.mu.Unlock()

	f.clock.Advance(time.Hour)
	second, err := f.o.StartFullSync(context.Background())
	require.NoError(t, err)
	s := f.waitFinished(t, second)

	assert.Equal(t, models.SessionCompleted, s.Status)
	assert.Equal(t, 30, f.store.deals.count())
	assert.Equal(t, before, f.store.statuses.get("d-007"))
	assert.Empty(t, f.store.conflicts.all())

	f.store.statuses.mu.Lock()
	defer f.store.statuses.mu.Unlock()
	assert.Equal(t, writes, f.store.statuses.writes)
}

func TestFullSync_FetchErrorFailsSession(t *testing.T) {
	f := newOrchestratorFixture(t, config.Sync{})
	f.crm.EXPECT().ListDeals(gomock.Any()).Return(adapter.NewPager(
		func(context.Context, string) (adapter.Page[models.Deal], error) {
			return adapter.Page[models.Deal]{}, adapter.ErrRemoteUnavailable
		}, ""))

	id, err := f.o.StartFullSync(context.Background())
	require.NoError(t, err)

	s := f.waitFinished(t, id)
	assert.Equal(t, models.SessionFailed, s.Status)
	assert.Contains(t, s.ErrorMessage, "page 1")
}

func TestFullSync_StartFailureFailsSession(t *testing.T) {
	f := newOrchestratorFixture(t, config.Sync{})
	f.store.sessions.rejectTransitions(models.SessionInProgress, errors.New("connection reset"))
	f.expectListing(1, remoteDeals(1, 3, syncStart))

	id, err := f.o.StartFullSync(context.Background())
	require.NoError(t, err)

	s := f.waitFinished(t, id)
	assert.Equal(t, models.SessionFailed, s.Status)
	assert.Contains(t, s.ErrorMessage, "connection reset")
	assert.Zero(t, f.store.deals.count())

	logs, err := f.store.sessions.ListLog(context.Background(), id)
	require.NoError(t, err)
	require.NotEmpty(t, logs)
	assert.Equal(t, models.SessionFailed, logs[len(logs)-1].Status)
}

func TestStartFullSync_RejectsSecondRun(t *testing.T) {
	f := newOrchestratorFixture(t, config.Sync{})
	entered, release := make(chan struct{}), make(chan struct{})
	f.crm.EXPECT().ListDeals(gomock.Any()).
		DoAndReturn(blockingListing(entered, release, remoteDeals(1, 5, syncStart)))

	start := make(chan struct{})
	type outcome struct {
		id  string
		err error
	}
	outcomes := make(chan outcome, 2)

	var wg sync.WaitGroup
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			id, err := f.o.StartFullSync(context.Background())
			outcomes <- outcome{id: id, err: err}
		}()
	}
	close(start)
	wg.Wait()
	close(outcomes)

	var (
		id       string
		started  int
		rejected int
	)
	for o := range outcomes {
		switch {
		case o.err == nil:
			started++
			id = o.id
		case errors.Is(o.err, ErrSyncAlreadyRunning):
			rejected++
		default:
			t.Errorf("unexpected error: %v", o.err)
		}
	}
	require.Equal(t, 1, started)
	require.Equal(t, 1, rejected)
	require.NotEmpty(t, id)

	<-entered
	close(release)
	assert.Equal(t, models.SessionCompleted, f.waitFinished(t, id).Status)

	f.expectListing(1, remoteDeals(1, 5, syncStart))
	next, err := f.o.StartFullSync(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, id, next)
	f.waitFinished(t, next)
}

// ─────────────────────────────────────────────
// Incremental sync
// ─────────────────────────────────────────────

func TestIncrementalSync_WatermarkFollowsCompletedSessions(t *testing.T) {
	f := newOrchestratorFixture(t, config.Sync{})

	var (
		mu    sync.Mutex
		since []time.Time
	)
	fail := false
	f.crm.EXPECT().ListDeals(gomock.Any()).
		DoAndReturn(func(opts adapter.ListOptions) *adapter.Pager[models.Deal] {
			mu.Lock()
			since = append(since, *opts.ModifiedSince)
			failing := fail
			mu.Unlock()
			return adapter.NewPager(func(context.Context, string) (adapter.Page[models.Deal], error) {
				if failing {
					return adapter.Page[models.Deal]{}, adapter.ErrRemoteUnavailable
				}
				return adapter.Page[models.Deal]{Items: remoteDeals(1, 3, syncStart)}, nil
			}, "")
		}).
		Times(3)

	// first run starts at the epoch
	id, err := f.o.StartIncrementalSync(context.Background())
	require.NoError(t, err)
	first := f.waitFinished(t, id)
	require.Equal(t, models.SessionCompleted, first.Status)

	// a failed run does not move the watermark
	f.clock.Advance(time.Hour)
	mu.Lock()
	fail = true
	mu.Unlock()
	id, err = f.o.StartIncrementalSync(context.Background())
	require.NoError(t, err)
	require.Equal(t, models.SessionFailed, f.waitFinished(t, id).Status)

	f.clock.Advance(time.Hour)
	mu.Lock()
	fail = false
	mu.Unlock()
	id, err = f.o.StartIncrementalSync(context.Background())
	require.NoError(t, err)
	third := f.waitFinished(t, id)
	require.Equal(t, models.SessionCompleted, third.Status)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, since, 3)
	assert.True(t, since[0].Equal(time.Unix(0, 0)))
	assert.True(t, since[1].Equal(first.StartedAt))
	assert.True(t, since[2].Equal(first.StartedAt))
	assert.Equal(t, first.StartedAt.Format(time.RFC3339Nano), metadataString(third.Metadata, models.MetadataWatermark))
}

func TestIncrementalSync_RefetchesEditsMadeWhileRunning(t *testing.T) {
	f := newOrchestratorFixture(t, config.Sync{})
	ctx := context.Background()
	editedAt := syncStart.Add(5 * time.Minute)

	var (
		mu    sync.Mutex
		since []time.Time
	)
	f.crm.EXPECT().ListDeals(gomock.Any()).
		DoAndReturn(func(opts adapter.ListOptions) *adapter.Pager[models.Deal] {
			mu.Lock()
			since = append(since, *opts.ModifiedSince)
			run := len(since)
			mu.Unlock()

			return adapter.NewPager(func(context.Context, string) (adapter.Page[models.Deal], error) {
				if run == 1 {
					// d-002 is edited remotely after this page was read and
					// before the session completes
					f.clock.Advance(10 * time.Minute)
					return adapter.Page[models.Deal]{Items: remoteDeals(1, 1, syncStart.Add(-time.Hour))}, nil
				}
				var items []models.Deal
				if edited := testDeal("d-002", editedAt); !editedAt.Before(*opts.ModifiedSince) {
					items = append(items, edited)
				}
				return adapter.Page[models.Deal]{Items: items}, nil
			}, "")
		}).
		Times(2)

	id, err := f.o.StartIncrementalSync(ctx)
	require.NoError(t, err)
	first := f.waitFinished(t, id)
	require.Equal(t, models.SessionCompleted, first.Status)
	require.True(t, first.CompletedAt.After(editedAt))

	id, err = f.o.StartIncrementalSync(ctx)
	require.NoError(t, err)
	require.Equal(t, models.SessionCompleted, f.waitFinished(t, id).Status)

	_, err = f.store.deals.GetByRemoteID(ctx, "d-002")
	require.NoError(t, err)
	assert.Equal(t, models.RecordSynced, f.store.statuses.get("d-002").SyncStatus)

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, since[1].Equal(first.StartedAt))
}

func TestIncrementalSync_UsesConfiguredEpoch(t *testing.T) {
	f := newOrchestratorFixture(t, config.Sync{Epoch: "2026-01-01T00:00:00Z"})

	var got time.Time
	f.crm.EXPECT().ListDeals(gomock.Any()).
		DoAndReturn(func(opts adapter.ListOptions) *adapter.Pager[models.Deal] {
			got = *opts.ModifiedSince
			return adapter.NewPager(pagedFetcher([]models.Deal{}), "")
		})

	id, err := f.o.StartIncrementalSync(context.Background())
	require.NoError(t, err)
	f.waitFinished(t, id)

	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), got)
}

// ─────────────────────────────────────────────
// Conflicts
// ─────────────────────────────────────────────

// divergeDeal imports d-001, edits it locally and returns a remote version
// edited after the import.
func divergeDeal(t *testing.T, f *orchestratorFixture) models.Deal {
	t.Helper()
	ctx := context.Background()

	f.expectListing(1, remoteDeals(1, 1, syncStart.Add(-time.Hour)))
	id, err := f.o.StartFullSync(ctx)
	require.NoError(t, err)
	f.waitFinished(t, id)

	f.clock.Advance(time.Minute)
	local, err := f.store.deals.GetByRemoteID(ctx, "d-001")
	require.NoError(t, err)
	local.Stage = "Proposal"
	_, err = f.store.deals.SaveLocal(ctx, local, f.clock.Now())
	require.NoError(t, err)

	remote := testDeal("d-001", syncStart.Add(2*time.Minute))
	remote.Stage = "Negotiation"
	return remote
}

func TestRefreshRecord_ManualPolicyRecordsConflictOnce(t *testing.T) {
	f := newOrchestratorFixture(t, config.Sync{ConflictPolicy: string(models.PolicyManual)})
	remote := divergeDeal(t, f)
	f.crm.EXPECT().GetDeal(gomock.Any(), "d-001").Return(remote, nil).Times(2)

	status, err := f.o.RefreshRecord(context.Background(), "d-001")
	require.NoError(t, err)
	assert.Equal(t, models.RecordConflict, status.SyncStatus)
	assert.Equal(t, []string{models.FieldStage}, status.ConflictFields)

	// the same remote version again changes nothing
	again, err := f.o.RefreshRecord(context.Background(), "d-001")
	require.NoError(t, err)
	assert.Equal(t, status, again)

	entries := f.store.conflicts.all()
	require.Len(t, entries, 1)
	assert.Equal(t, models.OutcomeUnresolved, entries[0].Outcome)
	assert.Nil(t, entries[0].ResolvedAt)

	local, err := f.store.deals.GetByRemoteID(context.Background(), "d-001")
	require.NoError(t, err)
	assert.Equal(t, "Proposal", local.Stage)
}

func TestRefreshRecord_RemoteWinsOverwritesLocal(t *testing.T) {
	f := newOrchestratorFixture(t, config.Sync{})
	remote := divergeDeal(t, f)
	f.crm.EXPECT().GetDeal(gomock.Any(), "d-001").Return(remote, nil)

	status, err := f.o.RefreshRecord(context.Background(), "d-001")
	require.NoError(t, err)
	assert.Equal(t, models.RecordSynced, status.SyncStatus)
	assert.Empty(t, status.ConflictFields)

	local, err := f.store.deals.GetByRemoteID(context.Background(), "d-001")
	require.NoError(t, err)
	assert.Equal(t, "Negotiation", local.Stage)

	entries := f.store.conflicts.all()
	require.Len(t, entries, 1)
	assert.Equal(t, models.OutcomeAutoResolved, entries[0].Outcome)
	assert.Equal(t, "auto:remote", entries[0].Resolution)
	assert.NotNil(t, entries[0].ResolvedAt)
}

func TestRefreshRecord_LocalWinsKeepsRecordPending(t *testing.T) {
	f := newOrchestratorFixture(t, config.Sync{ConflictPolicy: string(models.PolicyLocalWins)})
	remote := divergeDeal(t, f)
	f.crm.EXPECT().GetDeal(gomock.Any(), "d-001").Return(remote, nil)

	status, err := f.o.RefreshRecord(context.Background(), "d-001")
	require.NoError(t, err)
	assert.Equal(t, models.RecordPending, status.SyncStatus)

	local, err := f.store.deals.GetByRemoteID(context.Background(), "d-001")
	require.NoError(t, err)
	assert.Equal(t, "Proposal", local.Stage)
}

func TestRefreshRecord_Errors(t *testing.T) {
	f := newOrchestratorFixture(t, config.Sync{})

	_, err := f.o.RefreshRecord(context.Background(), "")
	assert.ErrorIs(t, err, validators.ErrEmptyRemoteID)

	f.crm.EXPECT().GetDeal(gomock.Any(), "gone").Return(models.Deal{}, adapter.ErrNotFound)
	_, err = f.o.RefreshRecord(context.Background(), "gone")
	assert.ErrorIs(t, err, adapter.ErrNotFound)
}

// ─────────────────────────────────────────────
// Cancellation, recovery and shutdown
// ─────────────────────────────────────────────

func TestCancelSession_StopsAtPageBoundary(t *testing.T) {
	f := newOrchestratorFixture(t, config.Sync{})
	entered, release := make(chan struct{}), make(chan struct{})
	f.crm.EXPECT().ListDeals(gomock.Any()).
		DoAndReturn(blockingListing(entered, release, remoteDeals(1, 200, syncStart), remoteDeals(201, 50, syncStart)))

	id, err := f.o.StartFullSync(context.Background())
	require.NoError(t, err)
	<-entered

	require.NoError(t, f.o.CancelSession(context.Background(), id))
	close(release)

	s := f.waitFinished(t, id)
	assert.Equal(t, models.SessionCancelled, s.Status)
	assert.Equal(t, int64(200), s.RecordsProcessed)
	assert.Equal(t, 200, f.store.deals.count())
}

func TestCancelSession_NotRunning(t *testing.T) {
	f := newOrchestratorFixture(t, config.Sync{})
	ctx := context.Background()

	done := models.SyncSession{ID: "done", Kind: models.SyncKindFull, Status: models.SessionCompleted, StartedAt: syncStart}
	orphan := models.SyncSession{ID: "orphan", Kind: models.SyncKindIncremental, Status: models.SessionPending, StartedAt: syncStart}
	job := models.SyncSession{ID: "job", Kind: models.SyncKindMassUpdate, Status: models.SessionInProgress, StartedAt: syncStart}
	for _, s := range []models.SyncSession{done, orphan, job} {
		require.NoError(t, f.store.sessions.CreateSession(ctx, s))
	}

	assert.ErrorIs(t, f.o.CancelSession(ctx, "done"), ErrSessionNotCancellable)
	assert.ErrorIs(t, f.o.CancelSession(ctx, "job"), ErrSessionNotCancellable)

	require.NoError(t, f.o.CancelSession(ctx, "orphan"))
	assert.Equal(t, models.SessionCancelled, f.store.sessions.get("orphan").Status)

	assert.Error(t, f.o.CancelSession(ctx, "missing"))
}

func TestRecoverStaleSessions_FailsInterruptedSyncs(t *testing.T) {
	f := newOrchestratorFixture(t, config.Sync{})
	ctx := context.Background()

	stale := []models.SyncSession{
		{ID: "old", Kind: models.SyncKindFull, Status: models.SessionCompleted, StartedAt: syncStart.Add(-time.Hour)},
		{ID: "full", Kind: models.SyncKindFull, Status: models.SessionInProgress, StartedAt: syncStart},
		{ID: "inc", Kind: models.SyncKindIncremental, Status: models.SessionPending, StartedAt: syncStart},
		{ID: "unsent", Kind: models.SyncKindBulkWrite, Status: models.SessionPending, StartedAt: syncStart},
	}
	for _, s := range stale {
		require.NoError(t, f.store.sessions.CreateSession(ctx, s))
	}

	require.NoError(t, f.o.RecoverStaleSessions(ctx))

	for _, id := range []string{"full", "inc", "unsent"} {
		s := f.store.sessions.get(id)
		assert.Equal(t, models.SessionFailed, s.Status, id)
		assert.Equal(t, interruptedByRestart, s.ErrorMessage, id)
	}
	assert.Equal(t, models.SessionCompleted, f.store.sessions.get("old").Status)
}

func TestShutdown_CancelsRunningSyncAndRejectsNewOnes(t *testing.T) {
	f := newOrchestratorFixture(t, config.Sync{})
	entered, release := make(chan struct{}), make(chan struct{})
	f.crm.EXPECT().ListDeals(gomock.Any()).
		DoAndReturn(blockingListing(entered, release, remoteDeals(1, 10, syncStart), remoteDeals(11, 10, syncStart)))

	id, err := f.o.StartFullSync(context.Background())
	require.NoError(t, err)
	<-entered

	done := make(chan error, 1)
	go func() { done <- f.o.Shutdown(context.Background()) }()

	require.Eventually(t, func() bool {
		_, err := f.o.StartFullSync(context.Background())
		return errors.Is(err, ErrShuttingDown)
	}, time.Second, 5*time.Millisecond)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, models.SessionCancelled, f.store.sessions.get(id).Status)
}

// ─────────────────────────────────────────────
// Push
// ─────────────────────────────────────────────

func TestPushLocalChanges_SendsModifiedDeals(t *testing.T) {
	f := newOrchestratorFixture(t, config.Sync{})
	ctx := context.Background()

	f.expectListing(1, remoteDeals(1, 2, syncStart.Add(-time.Hour)))
	id, err := f.o.StartFullSync(ctx)
	require.NoError(t, err)
	f.waitFinished(t, id)

	f.clock.Advance(time.Minute)
	edited, err := f.store.deals.GetByRemoteID(ctx, "d-001")
	require.NoError(t, err)
	edited.Amount = 5000
	_, err = f.store.deals.SaveLocal(ctx, edited, f.clock.Now())
	require.NoError(t, err)

	f.clock.Advance(time.Minute)
	created := testDeal("", syncStart)
	created.Name = "Fresh lead"
	created, err = f.store.deals.SaveLocal(ctx, created, f.clock.Now())
	require.NoError(t, err)

	f.clock.Advance(time.Minute)
	f.crm.EXPECT().UpsertDeals(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, updates []models.DealUpdate) ([]models.BatchRecordResult, error) {
			require.Len(t, updates, 2)
			assert.Equal(t, "d-001", updates[0].RemoteID)
			assert.Empty(t, updates[1].RemoteID)
			return []models.BatchRecordResult{
				{RemoteID: "d-001", Status: models.BatchRecordSuccess},
				{RemoteID: "d-900", Status: models.BatchRecordSuccess},
			}, nil
		})

	sessionID, err := f.o.PushLocalChanges(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)

	s := f.store.sessions.get(sessionID)
	assert.Equal(t, models.SyncKindBulkWrite, s.Kind)
	assert.Equal(t, models.SessionCompleted, s.Status)
	assert.Equal(t, models.SourcePush, metadataString(s.Metadata, models.MetadataSource))

	assert.Equal(t, models.RecordSynced, f.store.statuses.get("d-001").SyncStatus)
	assert.Equal(t, models.RecordSynced, f.store.statuses.get("d-900").SyncStatus)

	attached, err := f.store.deals.GetByLocalID(ctx, created.LocalID)
	require.NoError(t, err)
	assert.Equal(t, "d-900", attached.RemoteID)

	// nothing changed since the clean push
	f.clock.Advance(time.Minute)
	sessionID, err = f.o.PushLocalChanges(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessionID)
}

func TestPushLocalChanges_RetriesFailedRecords(t *testing.T) {
	f := newOrchestratorFixture(t, config.Sync{})
	ctx := context.Background()

	created, err := f.store.deals.SaveLocal(ctx, testDeal("", syncStart), f.clock.Now())
	require.NoError(t, err)

	f.clock.Advance(time.Minute)
	gomock.InOrder(
		f.crm.EXPECT().UpsertDeals(gomock.Any(), gomock.Len(1)).Return([]models.BatchRecordResult{
			{Status: models.BatchRecordError, Code: "INVALID_DATA", Message: "stage unknown"},
		}, nil),
		f.crm.EXPECT().UpsertDeals(gomock.Any(), gomock.Len(1)).Return([]models.BatchRecordResult{
			{RemoteID: "d-500", Status: models.BatchRecordSuccess},
		}, nil),
	)

	first, err := f.o.PushLocalChanges(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), metadataInt(f.store.sessions.get(first).Metadata, models.MetadataFailedCount))

	f.clock.Advance(time.Minute)
	second, err := f.o.PushLocalChanges(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	attached, err := f.store.deals.GetByLocalID(ctx, created.LocalID)
	require.NoError(t, err)
	assert.Equal(t, "d-500", attached.RemoteID)
}

func TestPushLocalChanges_SkipsConflicts(t *testing.T) {
	f := newOrchestratorFixture(t, config.Sync{ConflictPolicy: string(models.PolicyManual)})
	remote := divergeDeal(t, f)
	f.crm.EXPECT().GetDeal(gomock.Any(), "d-001").Return(remote, nil)

	_, err := f.o.RefreshRecord(context.Background(), "d-001")
	require.NoError(t, err)

	sessionID, err := f.o.PushLocalChanges(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sessionID)
}

func TestPushLocalChanges_WaitsForRunningPushJob(t *testing.T) {
	f := newOrchestratorFixture(t, config.Sync{})
	f.bulk.pollInterval = time.Hour
	ctx := context.Background()

	created := models.SmallBatchLimit + 1
	for i := range created {
		d := testDeal("", syncStart)
		d.Name = fmt.Sprintf("Lead %d", i)
		_, err := f.store.deals.SaveLocal(ctx, d, f.clock.Now())
		require.NoError(t, err)
	}
	f.clock.Advance(time.Minute)

	var inserts int
	f.crm.EXPECT().SubmitBulkWrite(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req models.BulkWriteRequest) (string, error) {
			for _, r := range req.Records {
				if r.Operation == models.BulkInsert {
					inserts++
				}
			}
			return "bw-push", nil
		})

	first, err := f.o.PushLocalChanges(ctx)
	require.NoError(t, err)
	require.Equal(t, models.SessionInProgress, f.store.sessions.get(first).Status)

	// the job has not attached remote ids yet
	f.clock.Advance(time.Minute)
	second, err := f.o.PushLocalChanges(ctx)
	assert.ErrorIs(t, err, ErrSyncAlreadyRunning)
	assert.Empty(t, second)
	assert.Equal(t, created, inserts)

	rows := make([]models.BulkRecordResult, 0, created)
	for i := range created {
		rows = append(rows, models.BulkRecordResult{Row: i + 1, RemoteID: fmt.Sprintf("d-%03d", i+1), Status: "ADDED"})
	}
	f.crm.EXPECT().GetBulkWriteStatus(gomock.Any(), "bw-push").Return(models.RemoteJobStatus{
		JobID: "bw-push", State: models.JobCompleted, Processed: int64(created), ResultURL: "https://crm.example/p",
	}, nil)
	f.crm.EXPECT().DownloadBulkResult(gomock.Any(), "https://crm.example/p").Return(rows, nil)

	_, err = f.bulk.CheckJobStatus(ctx, first)
	require.NoError(t, err)

	f.clock.Advance(time.Minute)
	third, err := f.o.PushLocalChanges(ctx)
	require.NoError(t, err)
	assert.Empty(t, third)
	assert.Equal(t, created, inserts)
}
