package service

import (
	"github.com/benbjohnson/clock"

	"github.com/MKhiriev/gig-sync/internal/adapter"
	"github.com/MKhiriev/gig-sync/internal/config"
	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/internal/store"
	"github.com/MKhiriev/gig-sync/internal/utils"
)

type ClientServices struct {
	SyncQueueService SyncQueueService
	RecordService    RecordService
	QueueProcessor   QueueProcessor
	Reconciler       Reconciler
	SyncCoordinator  SyncCoordinator
}

func NewClientServices(storages *store.ClientStorages, remote adapter.RemoteStore, probe adapter.ConnectivityProbe, userID string, cfg config.ClientWorkers, clk clock.Clock, logger *logger.Logger) *ClientServices {
	codecs := DefaultCodecs()
	ids := utils.NewUUIDGenerator()

	queueSvc := NewSyncQueueService(storages, RetrySchedule{Base: cfg.BackoffBase, Max: cfg.BackoffMax}, clk, logger)
	processor := NewQueueProcessor(queueSvc, storages.RecordRepository, remote, probe, codecs, cfg.BatchSize, logger)
	reconciler := NewReconciler(storages, remote, codecs, ids, clk, ReconcilerConfig{
		PullLimit:    cfg.PullLimit,
		MaxPullPages: cfg.MaxPullPages,
	}, logger)
	coordinator := NewSyncCoordinator(processor, reconciler, probe, clk, CoordinatorConfig{
		UserID:       userID,
		Interval:     cfg.SyncInterval,
		PullInterval: cfg.PullInterval,
		PassTimeout:  cfg.PassTimeout,
	}, logger)

	return &ClientServices{
		SyncQueueService: queueSvc,
		RecordService:    NewRecordService(storages, queueSvc, codecs, ids, clk, coordinator, logger),
		QueueProcessor:   processor,
		Reconciler:       reconciler,
		SyncCoordinator:  coordinator,
	}
}
