package workers

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/internal/service"
)

// PurgeWorker deletes Completed queue entries older than the retention
// period, once per interval.
type PurgeWorker struct {
	queue     service.SyncQueueService
	interval  time.Duration
	retention time.Duration
	clock     clock.Clock
	logger    *logger.Logger
}

func NewPurgeWorker(queue service.SyncQueueService, interval, retention time.Duration, clk clock.Clock, logger *logger.Logger) *PurgeWorker {
	return &PurgeWorker{
		queue:     queue,
		interval:  interval,
		retention: retention,
		clock:     clk,
		logger:    logger,
	}
}

func (w *PurgeWorker) Run(ctx context.Context) error {
	ticker := w.clock.Ticker(w.interval)
	defer ticker.Stop()

	w.purge(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.purge(ctx)
		}
	}
}

// purge failures are logged and retried on the next tick.
func (w *PurgeWorker) purge(ctx context.Context) {
	cutoff := w.clock.Now().Add(-w.retention)

	purged, err := w.queue.Purge(ctx, cutoff)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Err(err).Time("cutoff", cutoff).Msg("queue purge failed")
		}
		return
	}

	w.logger.Debug().Int64("purged", purged).Time("cutoff", cutoff).Msg("completed queue entries purged")
}
