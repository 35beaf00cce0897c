package service

import (
	"context"
	"maps"
	"time"

	"github.com/MKhiriev/crm-deal-sync/internal/logger"
	"github.com/MKhiriev/crm-deal-sync/internal/metrics"
	"github.com/MKhiriev/crm-deal-sync/internal/store"
	"github.com/MKhiriev/crm-deal-sync/internal/utils"
	"github.com/MKhiriev/crm-deal-sync/models"
)

// sessionTracker writes session lifecycle changes together with their audit
// log entries. It is shared by the orchestrator and the bulk manager, the
// only writers of sessions.
type sessionTracker struct {
	sessions store.SessionRepository
	ids      *utils.UUIDGenerator
	now      func() time.Time
	logger   *logger.Logger
}

func newSessionTracker(sessions store.SessionRepository, now func() time.Time, log *logger.Logger) *sessionTracker {
	return &sessionTracker{
		sessions: sessions,
		ids:      utils.NewUUIDGenerator(),
		now:      now,
		logger:   log,
	}
}

// trackedSession is the in-memory copy of a session owned by one goroutine.
type trackedSession struct {
	models.SyncSession
	log *logger.Logger
}

func (t *sessionTracker) create(ctx context.Context, kind models.SyncKind, metadata map[string]any) (*trackedSession, error) {
	s := models.SyncSession{
		ID:        t.ids.Generate(),
		Kind:      kind,
		Status:    models.SessionPending,
		StartedAt: t.now().UTC(),
		Metadata:  metadata,
	}
	if err := t.sessions.CreateSession(ctx, s); err != nil {
		return nil, err
	}

	ts := t.attach(s)
	ts.log.Info().Msg("session created")
	t.appendLog(ctx, ts, "session created", 0)
	return ts, nil
}

// attach wraps a session loaded from the store.
func (t *sessionTracker) attach(s models.SyncSession) *trackedSession {
	if s.Metadata == nil {
		s.Metadata = make(map[string]any)
	}
	return &trackedSession{
		SyncSession: s,
		log:         t.logger.ForSession(s.ID, string(s.Kind)),
	}
}

func (t *sessionTracker) transition(ctx context.Context, s *trackedSession, to models.SessionStatus, message, errMsg string) error {
	at := t.now().UTC()
	if err := t.sessions.TransitionSession(ctx, s.ID, s.Status, to, errMsg, at); err != nil {
		s.log.Err(err).Str("from", string(s.Status)).Str("to", string(to)).Msg("session transition rejected")
		return err
	}

	s.Status = to
	s.ErrorMessage = errMsg
	if to.IsTerminal() {
		s.CompletedAt = &at
		metrics.RecordSessionFinished(string(s.Kind), string(to), s.RecordsProcessed)
	}

	s.log.Info().Str("status", string(to)).Msg(message)
	t.appendLog(ctx, s, message, s.RecordsProcessed)
	return nil
}

// fail moves s to failed with cause as error message.
func (t *sessionTracker) fail(ctx context.Context, s *trackedSession, cause error) {
	if s.Status.IsTerminal() {
		return
	}
	if err := t.transition(ctx, s, models.SessionFailed, "session failed: "+cause.Error(), cause.Error()); err != nil {
		s.log.Err(err).Msg("failed to record session failure")
	}
}

func (t *sessionTracker) progress(ctx context.Context, s *trackedSession, p models.SessionProgress, message string, count int64) {
	s.RecordsTotal = p.RecordsTotal
	s.RecordsProcessed = p.RecordsProcessed
	s.APICallsMade = p.APICallsMade

	if err := t.sessions.UpdateProgress(ctx, s.ID, p); err != nil {
		s.log.Err(err).Msg("failed to persist session progress")
	}
	t.appendLog(ctx, s, message, count)
}

// addCalls adds n outbound calls to the session counter and persists the
// counter without an audit log entry.
func (t *sessionTracker) addCalls(ctx context.Context, s *trackedSession, n int64) {
	if n <= 0 {
		return
	}
	s.APICallsMade += n

	p := models.SessionProgress{
		RecordsTotal:     s.RecordsTotal,
		RecordsProcessed: s.RecordsProcessed,
		APICallsMade:     s.APICallsMade,
	}
	if err := t.sessions.UpdateProgress(ctx, s.ID, p); err != nil {
		s.log.Err(err).Msg("failed to persist api call count")
	}
}

// setMetadata merges values into the session metadata and persists the
// whole map.
func (t *sessionTracker) setMetadata(ctx context.Context, s *trackedSession, values map[string]any) error {
	merged := maps.Clone(s.Metadata)
	if merged == nil {
		merged = make(map[string]any, len(values))
	}
	maps.Copy(merged, values)

	if err := t.sessions.UpdateMetadata(ctx, s.ID, merged); err != nil {
		s.log.Err(err).Msg("failed to persist session metadata")
		return err
	}
	s.Metadata = merged
	return nil
}

func (t *sessionTracker) appendLog(ctx context.Context, s *trackedSession, message string, count int64) {
	entry := models.SyncStatusLogEntry{
		SessionID:   s.ID,
		Timestamp:   t.now().UTC(),
		Status:      s.Status,
		Message:     message,
		RecordCount: count,
	}
	if err := t.sessions.AppendLog(ctx, entry); err != nil {
		s.log.Err(err).Str("message", message).Msg("failed to append session log")
	}
}

// metadataInt reads a numeric metadata value. Values loaded back from a JSON
// column arrive as float64.
func metadataInt(metadata map[string]any, key string) int64 {
	return toInt64(metadata[key])
}

func metadataString(metadata map[string]any, key string) string {
	s, _ := metadata[key].(string)
	return s
}
