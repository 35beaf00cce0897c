package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/MKhiriev/crm-deal-sync/internal/utils"
	"github.com/MKhiriev/crm-deal-sync/models"
)

// run executes syncctl against handler and returns stdout.
func run(t *testing.T, handler http.HandlerFunc, args ...string) (string, error) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut
	app.ExitErrHandler = func(*cli.Context, error) {}

	err := app.RunContext(context.Background(), append([]string{"syncctl", "--server", srv.URL, "--token", "op"}, args...))
	return out.String(), err
}

func respond(status int, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
}

func TestFull_PrintsSessionID(t *testing.T) {
	out, err := run(t, respond(http.StatusAccepted, models.StartSessionResponse{SessionID: "s-1"}), "full")

	require.NoError(t, err)
	assert.Equal(t, "session s-1 started\n", out)
}

func TestPush_NothingToDo(t *testing.T) {
	out, err := run(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, "push")

	require.NoError(t, err)
	assert.Equal(t, "nothing to do\n", out)
}

func TestIncremental_AlreadyRunning(t *testing.T) {
	_, err := run(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "a sync of this kind is already running", http.StatusConflict)
	}, "incremental")

	assert.ErrorContains(t, err, "already running")
}

func TestStatus_RequiresSessionID(t *testing.T) {
	_, err := run(t, respond(http.StatusOK, models.SyncSession{}), "status")

	var exitErr cli.ExitCoder
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.ExitCode())
}

func TestStatus_PrintsSession(t *testing.T) {
	out, err := run(t, respond(http.StatusOK, models.SyncSession{ID: "s-1", Status: models.SessionInProgress}), "status", "s-1")

	require.NoError(t, err)
	var session models.SyncSession
	require.NoError(t, json.Unmarshal([]byte(out), &session))
	assert.Equal(t, models.SessionInProgress, session.Status)
}

func TestResolve(t *testing.T) {
	var path string
	out, err := run(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		respond(http.StatusOK, models.RecordSyncStatus{RemoteRecordID: "d-1", SyncStatus: models.RecordPending})(w, r)
	}, "resolve", "d-1", "use_local")

	require.NoError(t, err)
	assert.Equal(t, "/api/conflicts/d-1/resolve", path)
	assert.Equal(t, "d-1 is now pending\n", out)
}

func TestResolve_RejectsUnknownStrategy(t *testing.T) {
	_, err := run(t, respond(http.StatusOK, nil), "resolve", "d-1", "coin_flip")

	assert.ErrorContains(t, err, "unknown strategy")
}

func TestConflicts_Empty(t *testing.T) {
	out, err := run(t, respond(http.StatusOK, models.ConflictListResponse{}), "conflicts")

	require.NoError(t, err)
	assert.Equal(t, "no conflicts\n", out)
}

func TestHealth_UnhealthyExitsNonZero(t *testing.T) {
	out, err := run(t, respond(http.StatusServiceUnavailable, models.HealthReport{Status: models.Unhealthy}), "health")

	var exitErr cli.ExitCoder
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, out, `"unhealthy"`)
}

func TestSaveToken(t *testing.T) {
	var body models.TokenPayload
	out, err := run(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/accounts/acme/token", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		respond(http.StatusOK, map[string]string{"account_identity": "acme"})(w, r)
	}, "save-token", "--account", "acme", "--access-token", "a", "--refresh-token", "r", "--scope", "deals")

	require.NoError(t, err)
	assert.Equal(t, "credential saved for account acme\n", out)
	assert.Equal(t, []string{"deals"}, body.Scopes)
}

func TestTokenIssue_SignsVerifiableToken(t *testing.T) {
	out, err := run(t, respond(http.StatusOK, nil), "token", "issue", "--operator", "alice", "--sign-key", "secret")
	require.NoError(t, err)

	token, err := utils.ValidateAndParseJWTToken(strings.TrimSpace(out), "secret", "crm-deal-sync")
	require.NoError(t, err)
	assert.Equal(t, "alice", token.Operator)
}
