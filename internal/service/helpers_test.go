package service

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/MKhiriev/crm-deal-sync/internal/store"
	"github.com/MKhiriev/crm-deal-sync/models"
)

// ─────────────────────────────────────────────
// Clock
// ─────────────────────────────────────────────

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(start time.Time) *testClock {
	return &testClock{now: start}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func ptrTime(t time.Time) *time.Time { return &t }

// ─────────────────────────────────────────────
// Credentials
// ─────────────────────────────────────────────

type memCredentials struct {
	mu    sync.Mutex
	creds map[string]models.Credential
	saves int
}

func newMemCredentials() *memCredentials {
	return &memCredentials{creds: make(map[string]models.Credential)}
}

func (m *memCredentials) GetCredential(_ context.Context, account string) (models.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.creds[account]
	if !ok {
		return models.Credential{}, store.ErrCredentialNotFound
	}
	return c, nil
}

func (m *memCredentials) SaveCredential(_ context.Context, account string, cred models.Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cred.AccountIdentity = account
	m.creds[account] = cred
	m.saves++
	return nil
}

func (m *memCredentials) DeleteCredential(_ context.Context, account string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.creds, account)
	return nil
}

// ─────────────────────────────────────────────
// Sessions
// ─────────────────────────────────────────────

type memSessions struct {
	mu       sync.Mutex
	sessions map[string]models.SyncSession
	order    []string
	logs     []models.SyncStatusLogEntry
	progress []models.SessionProgress

	// transitions into rejectTo fail with rejectErr
	rejectTo  models.SessionStatus
	rejectErr error
}

func newMemSessions() *memSessions {
	return &memSessions{sessions: make(map[string]models.SyncSession)}
}

func (m *memSessions) CreateSession(_ context.Context, s models.SyncSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.Kind == models.SyncKindFull || s.Kind == models.SyncKindIncremental {
		for _, other := range m.sessions {
			if other.Kind == s.Kind && !other.Status.IsTerminal() {
				return store.ErrSessionAlreadyActive
			}
		}
	}
	s.Metadata = maps.Clone(s.Metadata)
	m.sessions[s.ID] = s
	m.order = append(m.order, s.ID)
	return nil
}

func (m *memSessions) GetSession(_ context.Context, id string) (models.SyncSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return models.SyncSession{}, store.ErrSessionNotFound
	}
	s.Metadata = maps.Clone(s.Metadata)
	return s, nil
}

func (m *memSessions) ListSessions(_ context.Context, filter store.SessionFilter) ([]models.SyncSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.SyncSession
	for i := len(m.order) - 1; i >= 0; i-- {
		s := m.sessions[m.order[i]]
		if filter.Kind != "" && s.Kind != filter.Kind {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		out = append(out, s)
		if filter.Limit > 0 && uint64(len(out)) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (m *memSessions) ListActiveSessions(_ context.Context) ([]models.SyncSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.SyncSession
	for _, id := range m.order {
		if s := m.sessions[id]; !s.Status.IsTerminal() {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memSessions) LastCompletedSession(_ context.Context, kind models.SyncKind) (models.SyncSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var (
		best  models.SyncSession
		found bool
	)
	for _, s := range m.sessions {
		if s.Kind != kind || s.Status != models.SessionCompleted || s.CompletedAt == nil {
			continue
		}
		if !found || s.CompletedAt.After(*best.CompletedAt) {
			best, found = s, true
		}
	}
	if !found {
		return models.SyncSession{}, store.ErrSessionNotFound
	}
	return best, nil
}

func (m *memSessions) TransitionSession(_ context.Context, id string, from, to models.SessionStatus, errMsg string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rejectErr != nil && to == m.rejectTo {
		return m.rejectErr
	}
	if !from.CanTransition(to) {
		return store.ErrInvalidStatusTransition
	}
	s, ok := m.sessions[id]
	if !ok {
		return store.ErrSessionNotFound
	}
	if s.Status != from {
		return store.ErrInvalidStatusTransition
	}
	s.Status = to
	s.ErrorMessage = errMsg
	if to.IsTerminal() {
		s.CompletedAt = ptrTime(at)
	}
	m.sessions[id] = s
	return nil
}

func (m *memSessions) rejectTransitions(to models.SessionStatus, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejectTo, m.rejectErr = to, err
}

func (m *memSessions) UpdateProgress(_ context.Context, id string, p models.SessionProgress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return store.ErrSessionNotFound
	}
	s.RecordsTotal, s.RecordsProcessed, s.APICallsMade = p.RecordsTotal, p.RecordsProcessed, p.APICallsMade
	m.sessions[id] = s
	m.progress = append(m.progress, p)
	return nil
}

func (m *memSessions) UpdateMetadata(_ context.Context, id string, metadata map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return store.ErrSessionNotFound
	}
	s.Metadata = maps.Clone(metadata)
	m.sessions[id] = s
	return nil
}

func (m *memSessions) AppendLog(_ context.Context, e models.SyncStatusLogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = int64(len(m.logs) + 1)
	m.logs = append(m.logs, e)
	return nil
}

func (m *memSessions) ListLog(_ context.Context, sessionID string) ([]models.SyncStatusLogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.SyncStatusLogEntry
	for _, e := range m.logs {
		if e.SessionID == sessionID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memSessions) get(id string) models.SyncSession {
	s, _ := m.GetSession(context.Background(), id)
	return s
}

// ─────────────────────────────────────────────
// Record statuses
// ─────────────────────────────────────────────

type memRecordStatus struct {
	mu       sync.Mutex
	statuses map[string]models.RecordSyncStatus
	writes   int
}

func newMemRecordStatus() *memRecordStatus {
	return &memRecordStatus{statuses: make(map[string]models.RecordSyncStatus)}
}

func (m *memRecordStatus) GetRecordStatus(_ context.Context, remoteID string) (models.RecordSyncStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.statuses[remoteID]
	if !ok {
		return models.RecordSyncStatus{}, store.ErrRecordStatusNotFound
	}
	return s, nil
}

func (m *memRecordStatus) UpsertRecordStatus(_ context.Context, s models.RecordSyncStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upsertLocked(s)
	return nil
}

func (m *memRecordStatus) upsertLocked(s models.RecordSyncStatus) {
	if prev, ok := m.statuses[s.RemoteRecordID]; ok && s.LocalRecordID == nil {
		s.LocalRecordID = prev.LocalRecordID
	}
	m.statuses[s.RemoteRecordID] = s.Normalize()
	m.writes++
}

func (m *memRecordStatus) UpsertRecordStatuses(_ context.Context, statuses []models.RecordSyncStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range statuses {
		m.upsertLocked(s)
	}
	return nil
}

func (m *memRecordStatus) ListRecordStatuses(_ context.Context, filter store.RecordStatusFilter) ([]models.RecordSyncStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := slices.Sorted(maps.Keys(m.statuses))
	var out []models.RecordSyncStatus
	for _, id := range ids {
		s := m.statuses[id]
		if filter.Status != "" && s.SyncStatus != filter.Status {
			continue
		}
		out = append(out, s)
	}
	if filter.Offset > 0 {
		if filter.Offset >= uint64(len(out)) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && uint64(len(out)) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *memRecordStatus) CountRecordStatuses(_ context.Context) (models.RecordStatusCounts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var c models.RecordStatusCounts
	for _, s := range m.statuses {
		c.Total++
		switch s.SyncStatus {
		case models.RecordSynced:
			c.Synced++
		case models.RecordPending:
			c.Pending++
		case models.RecordConflict:
			c.Conflict++
		case models.RecordError:
			c.Error++
		}
	}
	return c, nil
}

func (m *memRecordStatus) get(remoteID string) models.RecordSyncStatus {
	s, _ := m.GetRecordStatus(context.Background(), remoteID)
	return s
}

// ─────────────────────────────────────────────
// Conflict log
// ─────────────────────────────────────────────

type memConflictLog struct {
	mu      sync.Mutex
	entries []models.ConflictLogEntry
}

func (m *memConflictLog) AppendConflict(_ context.Context, e models.ConflictLogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = int64(len(m.entries) + 1)
	m.entries = append(m.entries, e)
	return nil
}

func (m *memConflictLog) ListConflictLog(_ context.Context, remoteID string) ([]models.ConflictLogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ConflictLogEntry
	for _, e := range m.entries {
		if e.RemoteRecordID == remoteID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memConflictLog) MarkConflictResolved(_ context.Context, remoteID, resolution string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.entries {
		if e.RemoteRecordID == remoteID && e.ResolvedAt == nil {
			m.entries[i].ResolvedAt = ptrTime(at)
			m.entries[i].Resolution = resolution
		}
	}
	return nil
}

func (m *memConflictLog) all() []models.ConflictLogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.entries)
}

// ─────────────────────────────────────────────
// Deals
// ─────────────────────────────────────────────

type memDeals struct {
	mu     sync.Mutex
	byID   map[int64]models.Deal
	nextID int64
}

func newMemDeals() *memDeals {
	return &memDeals{byID: make(map[int64]models.Deal)}
}

func (m *memDeals) findRemote(remoteID string) (models.Deal, bool) {
	for _, d := range m.byID {
		if d.RemoteID == remoteID {
			return d, true
		}
	}
	return models.Deal{}, false
}

func (m *memDeals) Upsert(_ context.Context, deal models.Deal) (models.Deal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.findRemote(deal.RemoteID); ok {
		deal.LocalID = prev.LocalID
		deal.LocalModifiedAt = prev.LocalModifiedAt
	} else {
		m.nextID++
		deal.LocalID = m.nextID
		deal.LocalModifiedAt = nil
	}
	m.byID[deal.LocalID] = deal
	return deal, nil
}

func (m *memDeals) GetByRemoteID(_ context.Context, remoteID string) (models.Deal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.findRemote(remoteID)
	if !ok {
		return models.Deal{}, store.ErrDealNotFound
	}
	return d, nil
}

func (m *memDeals) GetByLocalID(_ context.Context, localID int64) (models.Deal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.byID[localID]
	if !ok {
		return models.Deal{}, store.ErrDealNotFound
	}
	return d, nil
}

func (m *memDeals) GetModifiedSince(_ context.Context, since time.Time, limit uint64) ([]models.Deal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Deal
	for _, d := range m.byID {
		if d.LocalModifiedAt != nil && d.LocalModifiedAt.After(since) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LocalModifiedAt.Equal(*out[j].LocalModifiedAt) {
			return out[i].LocalID < out[j].LocalID
		}
		return out[i].LocalModifiedAt.Before(*out[j].LocalModifiedAt)
	})
	if limit > 0 && uint64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memDeals) SaveLocal(_ context.Context, deal models.Deal, at time.Time) (models.Deal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if deal.LocalID == 0 {
		m.nextID++
		deal.LocalID = m.nextID
	} else if _, ok := m.byID[deal.LocalID]; !ok {
		return models.Deal{}, store.ErrDealNotFound
	}
	deal.LocalModifiedAt = ptrTime(at.UTC())
	m.byID[deal.LocalID] = deal
	return deal, nil
}

func (m *memDeals) AttachRemoteID(_ context.Context, localID int64, remoteID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.byID[localID]
	if !ok {
		return store.ErrDealNotFound
	}
	d.RemoteID = remoteID
	m.byID[localID] = d
	return nil
}

func (m *memDeals) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

// ─────────────────────────────────────────────
// Storages
// ─────────────────────────────────────────────

type memStore struct {
	credentials *memCredentials
	sessions    *memSessions
	statuses    *memRecordStatus
	conflicts   *memConflictLog
	deals       *memDeals
}

func newMemStore() *memStore {
	return &memStore{
		credentials: newMemCredentials(),
		sessions:    newMemSessions(),
		statuses:    newMemRecordStatus(),
		conflicts:   &memConflictLog{},
		deals:       newMemDeals(),
	}
}

func (m *memStore) storages() *store.Storages {
	return &store.Storages{
		Credentials:  m.credentials,
		Sessions:     m.sessions,
		RecordStatus: m.statuses,
		ConflictLog:  m.conflicts,
		Deals:        m.deals,
	}
}

func testDeal(remoteID string, modified time.Time) models.Deal {
	return models.Deal{
		RemoteID:         remoteID,
		Name:             "Deal " + remoteID,
		Stage:            "Qualification",
		Amount:           1000,
		Currency:         "USD",
		Probability:      20,
		RemoteModifiedAt: ptrTime(modified),
	}
}

func tokenPayload(access, identity string) models.TokenPayload {
	return models.TokenPayload{AccountIdentity: identity, AccessToken: access, RefreshToken: "refresh", ExpiresIn: 3600}
}
