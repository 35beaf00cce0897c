package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/crm-deal-sync/internal/logger"
)

// tickerWorker calls job once per interval. A failed run is logged and the
// next tick tries again.
type tickerWorker struct {
	name     string
	interval time.Duration
	job      func(ctx context.Context) error
	logger   *logger.Logger
}

func newTickerWorker(name string, interval time.Duration, job func(ctx context.Context) error, log *logger.Logger) *tickerWorker {
	return &tickerWorker{
		name:     name,
		interval: interval,
		job:      job,
		logger:   log.Component(name),
	}
}

func (w *tickerWorker) Serve(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info().Dur("interval", w.interval).Msg("worker started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("worker stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := w.job(w.logger.WithContext(ctx)); err != nil {
				w.logger.Warn().Err(err).Msg("scheduled run failed")
			}
		}
	}
}

func (w *tickerWorker) String() string {
	return w.name
}
