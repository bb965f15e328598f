package workers

import (
	"context"

	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/internal/service"
)

// PendingFeedWorker follows the pending count of the queue, logs changes and
// forwards them to a sink such as the sync console.
type PendingFeedWorker struct {
	queue  service.SyncQueueService
	sink   func(int)
	logger *logger.Logger
}

func NewPendingFeedWorker(queue service.SyncQueueService, sink func(int), logger *logger.Logger) *PendingFeedWorker {
	return &PendingFeedWorker{queue: queue, sink: sink, logger: logger}
}

func (w *PendingFeedWorker) Run(ctx context.Context) error {
	for count := range w.queue.ObservePendingCount(ctx) {
		w.logger.Debug().Int("pending", count).Msg("pending queue entries")
		if w.sink != nil {
			w.sink(count)
		}
	}
	return nil
}
