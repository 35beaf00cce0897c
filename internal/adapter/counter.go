package adapter

import (
	"context"
	"sync/atomic"
)

// CallCounter counts outbound attempts made on behalf of one sync session.
type CallCounter struct {
	n atomic.Int64
}

func (c *CallCounter) Inc() {
	c.n.Add(1)
}

func (c *CallCounter) Load() int64 {
	return c.n.Load()
}

type callCounterKey struct{}

// WithCallCounter attaches counter to ctx. Every attempt [Client] makes with
// the returned context increments it, retries included.
func WithCallCounter(ctx context.Context, counter *CallCounter) context.Context {
	return context.WithValue(ctx, callCounterKey{}, counter)
}

// CallCounterFromContext returns the counter attached to ctx, or nil.
func CallCounterFromContext(ctx context.Context) *CallCounter {
	c, _ := ctx.Value(callCounterKey{}).(*CallCounter)
	return c
}

func countCall(ctx context.Context) {
	if c := CallCounterFromContext(ctx); c != nil {
		c.Inc()
	}
}
