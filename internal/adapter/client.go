// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/crm-deal-sync/internal/config"
	"github.com/MKhiriev/crm-deal-sync/internal/logger"
	"github.com/MKhiriev/crm-deal-sync/internal/metrics"
	"github.com/MKhiriev/crm-deal-sync/internal/utils"
	"github.com/MKhiriev/crm-deal-sync/models"
	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

const (
	headerRateLimitLimit     = "X-RateLimit-Limit"
	headerRateLimitRemaining = "X-RateLimit-Remaining"
	headerRateLimitReset     = "X-RateLimit-Reset"
	headerRetryAfter         = "Retry-After"

	breakerName            = "crm-api"
	breakerTripConsecutive = 5
	breakerOpenTimeout     = 30 * time.Second

	retryJitterPercent = 20
)

// AuthMode selects how a request is authorized.
type AuthMode int

const (
	// AuthRefresh sends a token valid for the safety margin and answers a
	// 401 with one forced refresh.
	AuthRefresh AuthMode = iota
	// AuthStored sends the stored token without refreshing it. A 401 is
	// returned to the caller.
	AuthStored
	// AuthNone sends no token.
	AuthNone
)

// Request describes one remote call.
type Request struct {
	Method string
	// Path is relative to the configured base URL. Absolute URLs are used
	// as-is.
	Path   string
	Query  url.Values
	Body   any
	Result any
	// Endpoint labels the call in logs and metrics. Defaults to Path.
	Endpoint string
	// Auth defaults to AuthRefresh. Absolute URLs on another host than the
	// base URL are always sent without a token.
	Auth AuthMode
}

func (r Request) endpoint() string {
	if r.Endpoint != "" {
		return r.Endpoint
	}
	return r.Path
}

// Client is the rate-limited transport to the remote CRM. It is safe for
// concurrent use; one instance is shared by the whole process.
type Client struct {
	http    *utils.HTTPClient
	baseURL *url.URL
	tokens  TokenProvider
	account string

	limiter *rate.Limiter
	sem     *semaphore.Weighted
	breaker *gobreaker.CircuitBreaker[*resty.Response]
	quota   *quotaTracker

	maxAttempts      int
	baseDelay        time.Duration
	maxDelay         time.Duration
	rateLimitMaxWait time.Duration

	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time

	logger *logger.Logger
}

// ClientOption customises a [Client].
type ClientOption func(*Client)

// WithSleep replaces the function used to wait between retries.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) ClientOption {
	return func(c *Client) { c.sleep = sleep }
}

// WithClock replaces the time source used for rate-limit bookkeeping.
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) { c.now = now }
}

// NewClient builds the client for cfg. Tokens for account are obtained from
// tokens before every attempt.
func NewClient(cfg config.Adapter, account string, tokens TokenProvider, log *logger.Logger, opts ...ClientOption) *Client {
	baseURL := normalizeBaseURL(cfg.BaseURL)
	httpClient := utils.NewHTTPClient()
	httpClient.SetBaseURL(baseURL)
	httpClient.SetTimeout(cfg.RequestTimeout)
	httpClient.SetHeader("Accept", "application/json")

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := max(cfg.Burst, 1)

	maxConcurrency := cfg.MaxConcurrency
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}

	c := &Client{
		http:             httpClient,
		baseURL:          parseBaseURL(baseURL),
		tokens:           tokens,
		account:          account,
		limiter:          rate.NewLimiter(limit, burst),
		sem:              semaphore.NewWeighted(maxConcurrency),
		quota:            &quotaTracker{},
		maxAttempts:      max(cfg.MaxRetries, 1),
		baseDelay:        positive(cfg.RetryBaseDelay, config.DefaultRetryBaseDelay),
		maxDelay:         positive(cfg.RetryMaxDelay, config.DefaultRetryMaxDelay),
		rateLimitMaxWait: positive(cfg.RateLimitMaxWait, config.DefaultRateLimitMaxWait),
		sleep:            sleepContext,
		now:              time.Now,
		logger:           log.Component("crm-client"),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.breaker = gobreaker.NewCircuitBreaker[*resty.Response](gobreaker.Settings{
		Name:     breakerName,
		Interval: time.Minute,
		Timeout:  breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerTripConsecutive
		},
		// only transient failures count against the remote
		IsSuccessful: func(err error) bool {
			return err == nil || !IsTransient(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("circuit breaker state changed")
			metrics.SetCircuitBreakerState(to.String())
		},
	})

	return c
}

// Call performs req with token injection, pacing, rate-limit waits and
// retries.
//
// Rate-limited attempts are retried after the wait the remote asks for, with
// delays that never shrink. Transient failures are retried with capped
// exponential backoff and jitter. A 401 triggers one forced token refresh.
// Other errors are returned immediately. At most maxAttempts attempts are
// made per failure class.
//
// On an HTTP error the response is returned alongside the error so callers
// can inspect the body.
func (c *Client) Call(ctx context.Context, req Request) (*resty.Response, error) {
	if !c.ownsURL(req.Path) {
		req.Auth = AuthNone
	}

	backoff := c.newBackoff()
	var (
		rateLimitDelay time.Duration
		rateLimited    int
		refreshed      bool
	)

	for attempt := 1; ; attempt++ {
		resp, err := c.attempt(ctx, req)
		if err == nil {
			return resp, nil
		}

		log := c.logger.With().Str("endpoint", req.endpoint()).Int("attempt", attempt).Logger()

		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			return nil, fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)

		case errors.Is(err, ErrUnauthorized):
			if req.Auth != AuthRefresh {
				return resp, err
			}
			if refreshed {
				return resp, fmt.Errorf("%w: fresh token rejected: %w", ErrAuthenticationRevoked, err)
			}
			refreshed = true
			metrics.RecordRetry(metrics.RetryUnauthorized)
			log.Info().Msg("access token rejected, forcing refresh")
			if _, refreshErr := c.tokens.ForceRefresh(ctx, c.account); refreshErr != nil {
				return nil, refreshErr
			}

		case errors.Is(err, ErrRateLimited):
			rateLimited++
			if rateLimited >= c.maxAttempts {
				return resp, err
			}
			rateLimitDelay = nextRateLimitDelay(rateLimitDelay, c.rateLimitHint(resp), c.baseDelay, c.rateLimitMaxWait)
			metrics.RecordRetry(metrics.RetryRateLimit)
			metrics.RecordRateLimitWait(rateLimitDelay)
			log.Warn().Dur("delay", rateLimitDelay).Msg("rate limited by remote api, waiting")
			if sleepErr := c.sleep(ctx, rateLimitDelay); sleepErr != nil {
				return nil, sleepErr
			}

		case IsTransient(err):
			delay, stop := backoff.Next()
			if stop {
				return resp, err
			}
			metrics.RecordRetry(metrics.RetryTransient)
			log.Warn().Err(err).Dur("delay", delay).Msg("transient remote failure, backing off")
			if sleepErr := c.sleep(ctx, delay); sleepErr != nil {
				return nil, sleepErr
			}

		default:
			return resp, err
		}
	}
}

// attempt makes exactly one outbound request.
func (c *Client) attempt(ctx context.Context, req Request) (*resty.Response, error) {
	if err := c.waitForQuota(ctx); err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer c.sem.Release(1)

	token, err := c.token(ctx, req.Auth)
	if err != nil {
		return nil, err
	}

	countCall(ctx)
	start := c.now()

	resp, err := c.breaker.Execute(func() (*resty.Response, error) {
		r := c.http.R().SetContext(ctx)
		if token != "" {
			r.SetAuthToken(token)
		}
		if req.Query != nil {
			r.SetQueryParamsFromValues(req.Query)
		}
		if req.Body != nil {
			r.SetHeader("Content-Type", "application/json").SetBody(req.Body)
		}
		if req.Result != nil {
			r.SetResult(req.Result)
		}

		resp, err := r.Execute(req.Method, req.Path)
		if err != nil {
			return nil, mapTransportError(ctx, err)
		}
		c.quota.observe(resp.Header(), c.now())
		return resp, mapHTTPError(resp)
	})

	metrics.RecordAPIRequest(req.endpoint(), outcomeOf(err), c.now().Sub(start))
	return resp, err
}

func (c *Client) token(ctx context.Context, mode AuthMode) (string, error) {
	switch mode {
	case AuthNone:
		return "", nil
	case AuthStored:
		return c.tokens.StoredToken(ctx, c.account)
	default:
		return c.tokens.GetValidToken(ctx, c.account)
	}
}

// ownsURL reports whether path points at the configured remote. Relative
// paths always do; absolute URLs must match the base URL's scheme and host.
func (c *Client) ownsURL(path string) bool {
	u, err := url.Parse(path)
	if err != nil {
		return false
	}
	if !u.IsAbs() {
		return true
	}
	return c.baseURL != nil &&
		strings.EqualFold(u.Scheme, c.baseURL.Scheme) &&
		strings.EqualFold(u.Host, c.baseURL.Host)
}

// waitForQuota blocks while the remote reported an exhausted quota whose
// reset lies in the future.
func (c *Client) waitForQuota(ctx context.Context) error {
	now := c.now()
	until := c.quota.exhaustedUntil(now)
	if until.IsZero() {
		return nil
	}
	wait := min(until.Sub(now), c.rateLimitMaxWait)
	metrics.RecordRateLimitWait(wait)
	c.logger.Info().Dur("delay", wait).Msg("remote quota exhausted, waiting for reset")
	return c.sleep(ctx, wait)
}

func (c *Client) rateLimitHint(resp *resty.Response) time.Duration {
	now := c.now()
	if resp != nil {
		if d := parseRetryAfter(resp.Header().Get(headerRetryAfter), now); d > 0 {
			return d
		}
	}
	if reset := c.quota.snapshot().ResetAt; reset.After(now) {
		return reset.Sub(now)
	}
	return 0
}

func (c *Client) newBackoff() retry.Backoff {
	b := retry.NewExponential(c.baseDelay)
	b = retry.WithJitterPercent(retryJitterPercent, b)
	b = retry.WithCappedDuration(c.maxDelay, b)
	return retry.WithMaxRetries(uint64(c.maxAttempts-1), b)
}

// RateLimit returns the last rate-limit state reported by the remote.
func (c *Client) RateLimit() models.RateLimitState {
	return c.quota.snapshot()
}

// BreakerState returns the circuit breaker state name.
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrRateLimited):
		return metrics.OutcomeRateLimited
	default:
		return metrics.OutcomeError
	}
}

// quotaTracker remembers the rate-limit headers of the latest response.
type quotaTracker struct {
	mu    sync.Mutex
	state models.RateLimitState
}

func (q *quotaTracker) observe(h http.Header, now time.Time) {
	remaining := h.Get(headerRateLimitRemaining)
	if remaining == "" {
		return
	}
	n, err := strconv.ParseInt(strings.TrimSpace(remaining), 10, 64)
	if err != nil {
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	q.state.Known = true
	q.state.Remaining = n
	if limit, err := strconv.ParseInt(strings.TrimSpace(h.Get(headerRateLimitLimit)), 10, 64); err == nil {
		q.state.Limit = limit
	}
	q.state.ResetAt = parseReset(h.Get(headerRateLimitReset), now)
}

func (q *quotaTracker) snapshot() models.RateLimitState {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state
}

func (q *quotaTracker) exhaustedUntil(now time.Time) time.Time {
	s := q.snapshot()
	if !s.Known || s.Remaining > 0 || !s.ResetAt.After(now) {
		return time.Time{}
	}
	return s.ResetAt
}

// parseReset reads X-RateLimit-Reset. Values that look like a unix timestamp
// are absolute, smaller ones are seconds from now.
func parseReset(header string, now time.Time) time.Time {
	n, err := strconv.ParseInt(strings.TrimSpace(header), 10, 64)
	if err != nil || n <= 0 {
		return time.Time{}
	}
	if n > 1_000_000_000 {
		return time.Unix(n, 0)
	}
	return now.Add(time.Duration(n) * time.Second)
}

func normalizeBaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	return strings.TrimRight(raw, "/")
}

func parseBaseURL(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil
	}
	return u
}

func positive(d, fallback time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return fallback
}
