package workers

import (
	"context"
	"fmt"

	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/internal/service"
)

// AutoSyncWorker owns the coordinator's periodic passes for the life of the
// process. Before starting it returns entries a killed process left in
// Processing to Pending.
type AutoSyncWorker struct {
	queue       service.SyncQueueService
	coordinator service.SyncCoordinator
	logger      *logger.Logger
}

func NewAutoSyncWorker(queue service.SyncQueueService, coordinator service.SyncCoordinator, logger *logger.Logger) *AutoSyncWorker {
	return &AutoSyncWorker{queue: queue, coordinator: coordinator, logger: logger}
}

func (w *AutoSyncWorker) Run(ctx context.Context) error {
	recovered, err := w.queue.RecoverProcessing(ctx)
	if err != nil {
		return fmt.Errorf("recover processing entries: %w", err)
	}
	if recovered > 0 {
		w.logger.Info().Int64("recovered", recovered).Msg("orphaned queue entries returned to pending")
	}

	w.coordinator.Start(ctx)
	<-ctx.Done()
	w.coordinator.Stop()

	return nil
}
