package adapter

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/crm-deal-sync/internal/config"
	"github.com/MKhiriev/crm-deal-sync/internal/logger"
)

// fakeTokens hands out a fixed token and switches to next on ForceRefresh.
type fakeTokens struct {
	mu     sync.Mutex
	token  string
	next   string
	forced int
	err    error
}

func (f *fakeTokens) GetValidToken(context.Context, string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, f.err
}

func (f *fakeTokens) ForceRefresh(context.Context, string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.forced++
	if f.next != "" {
		f.token = f.next
	}
	return f.token, f.err
}

func (f *fakeTokens) StoredToken(context.Context, string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, f.err
}

func (f *fakeTokens) forcedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.forced
}

// sleepRecorder replaces real sleeping and remembers every requested delay.
type sleepRecorder struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (s *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.delays = append(s.delays, d)
	s.mu.Unlock()
	return ctx.Err()
}

func (s *sleepRecorder) recorded() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Duration(nil), s.delays...)
}

func testAdapterConfig(baseURL string) config.Adapter {
	return config.Adapter{
		BaseURL:          baseURL,
		RequestTimeout:   5 * time.Second,
		MaxRetries:       4,
		RetryBaseDelay:   10 * time.Millisecond,
		RetryMaxDelay:    80 * time.Millisecond,
		RateLimitMaxWait: 2 * time.Second,
		MaxConcurrency:   4,
		PageSize:         200,
	}
}

// newTestClient creates a Client aimed at the test server whose sleeps are
// recorded instead of performed.
func newTestClient(t *testing.T, cfg config.Adapter, tokens TokenProvider, opts ...ClientOption) (*Client, *sleepRecorder) {
	t.Helper()
	if tokens == nil {
		tokens = &fakeTokens{token: "access-1"}
	}
	rec := &sleepRecorder{}
	opts = append([]ClientOption{WithSleep(rec.sleep)}, opts...)
	return NewClient(cfg, "acme", tokens, logger.Nop(), opts...), rec
}
