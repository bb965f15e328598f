package workers

import (
	"context"

	"github.com/benbjohnson/clock"
	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/gig-sync/internal/config"
	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/internal/service"
)

type Workers struct {
	workers []Worker
	logger  *logger.Logger
}

// NewWorkers builds the client worker set. onPending, when not nil, receives
// every pending-count change.
func NewWorkers(services *service.ClientServices, cfg config.ClientWorkers, clk clock.Clock, onPending func(int), logger *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			NewAutoSyncWorker(services.SyncQueueService, services.SyncCoordinator, logger),
			NewPurgeWorker(services.SyncQueueService, cfg.PurgeInterval, cfg.RetentionPeriod, clk, logger),
			NewPendingFeedWorker(services.SyncQueueService, onPending, logger),
		},
		logger: logger,
	}
}

// Run starts every worker and waits for all of them. The first failure
// cancels the rest and is returned.
func (w *Workers) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, worker := range w.workers {
		g.Go(func() error {
			return worker.Run(ctx)
		})
	}

	err := g.Wait()
	if err != nil {
		w.logger.Err(err).Msg("workers stopped with error")
		return err
	}

	w.logger.Info().Msg("workers stopped")
	return nil
}
