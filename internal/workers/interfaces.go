// Package workers runs the engine's periodic background jobs under a suture
// supervisor.
//
// Every job is a [Worker]: a suture service that ticks at a fixed interval
// and calls into the service layer. The [Workers] aggregate owns the
// supervisor tree and restarts a job that panics or returns early.
package workers

import (
	"context"

	"github.com/MKhiriev/crm-deal-sync/models"
)

// Worker is a supervised background job.
//
// Serve blocks until ctx is cancelled; String names the job in supervisor
// events and logs.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Serve(ctx context.Context) error {
//	    <-ctx.Done()
//	    return ctx.Err()
//	}
//
//	func (w *MyWorker) String() string { return "my-worker" }
type Worker interface {
	Serve(ctx context.Context) error
	String() string
}

// SyncJobs is the part of the sync orchestrator driven by the schedulers.
type SyncJobs interface {
	StartIncrementalSync(ctx context.Context) (string, error)
	PushLocalChanges(ctx context.Context) (string, error)
}

// HealthProber refreshes the health gauges.
type HealthProber interface {
	Check(ctx context.Context) models.HealthReport
}
