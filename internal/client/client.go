package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/crm-deal-sync/internal/logger"
	"github.com/MKhiriev/crm-deal-sync/internal/utils"
	"github.com/MKhiriev/crm-deal-sync/models"
)

const defaultTimeout = 30 * time.Second

type Config struct {
	Address string
	Token   string
	Timeout time.Duration
}

type httpOperatorClient struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewClient constructs an [OperatorAPI] over HTTP. The address may omit the
// scheme; "http://" is assumed. A non-empty token is sent as a bearer token
// on every request.
func NewClient(cfg Config, logger *logger.Logger) (OperatorAPI, error) {
	baseURL, err := normalizeBaseURL(cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")
	if token := strings.TrimSpace(cfg.Token); token != "" {
		client.SetAuthToken(token)
	}

	return &httpOperatorClient{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (c *httpOperatorClient) startSession(ctx context.Context, path string) (string, error) {
	var started models.StartSessionResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&started).
		Post(path)
	if err != nil {
		return "", fmt.Errorf("request %s: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return started.SessionID, nil
}

func (c *httpOperatorClient) StartFullSync(ctx context.Context) (string, error) {
	return c.startSession(ctx, "/api/sync/full")
}

func (c *httpOperatorClient) StartIncrementalSync(ctx context.Context) (string, error) {
	return c.startSession(ctx, "/api/sync/incremental")
}

// PushLocalChanges maps the server's 204 to an empty session id.
func (c *httpOperatorClient) PushLocalChanges(ctx context.Context) (string, error) {
	return c.startSession(ctx, "/api/sync/push")
}

func (c *httpOperatorClient) SessionStatus(ctx context.Context, sessionID string) (models.SyncSession, error) {
	var session models.SyncSession

	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("sessionID", sessionID).
		SetResult(&session).
		Get("/api/sync/sessions/{sessionID}")
	if err != nil {
		return models.SyncSession{}, fmt.Errorf("session status request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SyncSession{}, err
	}

	return session, nil
}

func (c *httpOperatorClient) CancelSession(ctx context.Context, sessionID string) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("sessionID", sessionID).
		Post("/api/sync/sessions/{sessionID}/cancel")
	if err != nil {
		return fmt.Errorf("cancel session request: %w", err)
	}
	return mapHTTPError(resp)
}

func (c *httpOperatorClient) BulkStatus(ctx context.Context, sessionID string) (models.BulkStatus, error) {
	var status models.BulkStatus

	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("sessionID", sessionID).
		SetResult(&status).
		Get("/api/bulk/{sessionID}")
	if err != nil {
		return models.BulkStatus{}, fmt.Errorf("bulk status request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.BulkStatus{}, err
	}

	return status, nil
}

func (c *httpOperatorClient) ListConflicts(ctx context.Context, limit, offset uint64) ([]models.ConflictView, error) {
	var list models.ConflictListResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("limit", strconv.FormatUint(limit, 10)).
		SetQueryParam("offset", strconv.FormatUint(offset, 10)).
		SetResult(&list).
		Get("/api/conflicts")
	if err != nil {
		return nil, fmt.Errorf("list conflicts request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return list.Conflicts, nil
}

func (c *httpOperatorClient) ResolveConflict(ctx context.Context, remoteID string, override models.ConflictOverride) (models.RecordSyncStatus, error) {
	var status models.RecordSyncStatus

	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("remoteID", remoteID).
		SetHeader("Content-Type", "application/json").
		SetBody(models.ResolveConflictRequest{ConflictOverride: override}).
		SetResult(&status).
		Post("/api/conflicts/{remoteID}/resolve")
	if err != nil {
		return models.RecordSyncStatus{}, fmt.Errorf("resolve conflict request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RecordSyncStatus{}, err
	}

	return status, nil
}

// Health returns the report even when the server answers 503 for an
// unhealthy instance.
func (c *httpOperatorClient) Health(ctx context.Context) (models.HealthReport, error) {
	var report models.HealthReport

	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&report).
		SetError(&report).
		Get("/api/health")
	if err != nil {
		return models.HealthReport{}, fmt.Errorf("health request: %w", err)
	}
	if resp.StatusCode() == http.StatusServiceUnavailable && report.Status != "" {
		return report, nil
	}
	if err = mapHTTPError(resp); err != nil {
		return models.HealthReport{}, err
	}

	return report, nil
}

type saveTokenResponse struct {
	AccountIdentity string `json:"account_identity"`
}

// SaveToken stores a CRM credential. An empty account uses the legacy
// route where the server works the identity out of the payload.
func (c *httpOperatorClient) SaveToken(ctx context.Context, account string, payload models.TokenPayload) (string, error) {
	var saved saveTokenResponse

	req := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		SetResult(&saved)

	path := "/api/auth/token"
	if account != "" {
		req.SetPathParam("account", account)
		path = "/api/auth/accounts/{account}/token"
	}

	resp, err := req.Post(path)
	if err != nil {
		return "", fmt.Errorf("save token request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	c.logger.Debug().Str("account", saved.AccountIdentity).Msg("credential saved")
	return saved.AccountIdentity, nil
}
