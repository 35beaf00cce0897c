package adapter

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// nextRateLimitDelay returns the wait before retrying a rate-limited call.
//
// hint is what the remote told us (Retry-After or the time left until the
// quota resets). Without a hint the delay doubles from base. Within one call
// the delay never shrinks and never exceeds maxWait.
func nextRateLimitDelay(prev, hint, base, maxWait time.Duration) time.Duration {
	d := hint
	if d <= 0 {
		d = base
		if prev > 0 {
			d = prev * 2
		}
	}
	d = max(d, prev)
	return min(d, maxWait)
}

// parseRetryAfter reads a Retry-After header given either in seconds or as an
// HTTP date.
func parseRetryAfter(header string, now time.Time) time.Duration {
	header = strings.TrimSpace(header)
	if header == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		if seconds < 0 {
			return 0
		}
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(header); err == nil && at.After(now) {
		return at.Sub(now)
	}
	return 0
}

func sleepContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
