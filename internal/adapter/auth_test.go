package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/crm-deal-sync/internal/config"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuth(srvURL string) AuthAdapter {
	return NewAuthAdapter(config.Auth{
		TokenURL:     srvURL + "/oauth/v2/token",
		ClientID:     "client-1",
		ClientSecret: "secret-1",
	}, 5*time.Second)
}

func TestRefreshToken_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		assert.Equal(t, "refresh-1", r.PostForm.Get("refresh_token"))
		assert.Equal(t, "client-1", r.PostForm.Get("client_id"))
		assert.Equal(t, "secret-1", r.PostForm.Get("client_secret"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "access-2",
			"expires_in":   3600,
			"token_type":   "Bearer",
			"scope":        "deals.read deals.write",
		})
	}))
	defer srv.Close()

	before := time.Now()
	payload, err := newTestAuth(srv.URL).RefreshToken(context.Background(), "refresh-1")

	require.NoError(t, err)
	assert.Equal(t, "access-2", payload.AccessToken)
	assert.Equal(t, "refresh-1", payload.RefreshToken)
	assert.Equal(t, []string{"deals.read", "deals.write"}, payload.Scopes)
	assert.InDelta(t, before.Add(time.Hour).Unix(), payload.ExpiresAt, 5)
}

func TestRefreshToken_Classification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{name: "invalid grant", status: http.StatusBadRequest, body: `{"error":"invalid_grant"}`, want: ErrAuthenticationRevoked},
		{name: "invalid client", status: http.StatusUnauthorized, body: `{"error":"invalid_client"}`, want: ErrAuthenticationRevoked},
		{name: "server error", status: http.StatusBadGateway, body: `oops`, want: ErrAuthenticationUnavailable},
		{name: "throttled", status: http.StatusTooManyRequests, body: `{"error":"slow_down"}`, want: ErrAuthenticationUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestAuth(srv.URL).RefreshToken(context.Background(), "refresh-1")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRefreshToken_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestAuth(url).RefreshToken(context.Background(), "refresh-1")
	assert.ErrorIs(t, err, ErrAuthenticationUnavailable)
}

func TestRefreshToken_NoRefreshToken(t *testing.T) {
	_, err := newTestAuth("http://127.0.0.1:1").RefreshToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrAuthenticationRevoked)
}
