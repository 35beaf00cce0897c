// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/MKhiriev/crm-deal-sync/internal/config"
	"github.com/MKhiriev/crm-deal-sync/internal/logger"
	"github.com/MKhiriev/crm-deal-sync/internal/service"
)

const (
	failureThreshold = 5
	failureDecay     = 30
	failureBackoff   = 15 * time.Second
	shutdownTimeout  = 10 * time.Second
)

type Workers struct {
	supervisor *suture.Supervisor
	workers    []Worker
	logger     *logger.Logger
}

// NewWorkers schedules the incremental sync, the local change push and the
// health probe. A zero interval disables the job.
func NewWorkers(jobs SyncJobs, health HealthProber, cfg config.Workers, log *logger.Logger) *Workers {
	log = log.Component("workers")

	w := &Workers{logger: log}
	w.supervisor = suture.New("crm-deal-sync", suture.Spec{
		EventHook:        w.logEvent,
		FailureThreshold: failureThreshold,
		FailureDecay:     failureDecay,
		FailureBackoff:   failureBackoff,
		Timeout:          shutdownTimeout,
	})

	if cfg.IncrementalSyncInterval > 0 {
		w.add(newTickerWorker("incremental-sync", cfg.IncrementalSyncInterval, func(ctx context.Context) error {
			return ignoreBusy(jobs.StartIncrementalSync(ctx))
		}, log))
	}
	if cfg.PushInterval > 0 {
		w.add(newTickerWorker("push-local-changes", cfg.PushInterval, func(ctx context.Context) error {
			return ignoreBusy(jobs.PushLocalChanges(ctx))
		}, log))
	}
	if cfg.HealthProbeInterval > 0 {
		w.add(newTickerWorker("health-probe", cfg.HealthProbeInterval, func(ctx context.Context) error {
			health.Check(ctx)
			return nil
		}, log))
	}

	return w
}

func (w *Workers) add(worker Worker) {
	w.workers = append(w.workers, worker)
	w.supervisor.Add(worker)
}

// Run starts the supervisor in the background. The returned channel yields
// the supervisor's exit error once ctx is cancelled.
func (w *Workers) Run(ctx context.Context) <-chan error {
	w.logger.Info().Int("workers", len(w.workers)).Msg("starting workers")
	return w.supervisor.ServeBackground(ctx)
}

func (w *Workers) logEvent(e suture.Event) {
	w.logger.Warn().Fields(e.Map()).Msg(e.String())
}

// ignoreBusy treats a run skipped because another one is in flight as
// success.
func ignoreBusy(sessionID string, err error) error {
	if errors.Is(err, service.ErrSyncAlreadyRunning) || errors.Is(err, service.ErrShuttingDown) {
		return nil
	}
	return err
}
