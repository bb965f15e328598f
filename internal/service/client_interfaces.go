package service

import (
	"context"
	"time"

	"github.com/MKhiriev/gig-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// SyncQueueService owns the lifecycle of sync queue entries. Every method
// joins the local transaction carried by ctx, if any.
type SyncQueueService interface {
	// Enqueue records a mutation of (table, localID). An outstanding entry for
	// the record absorbs the mutation instead of a second entry being opened.
	// queued is false when the mutation cancelled a create that never reached
	// the remote store, leaving nothing to push.
	Enqueue(ctx context.Context, req models.EnqueueRequest) (entry models.SyncQueueEntry, queued bool, err error)

	// ClaimBatch moves up to max due entries, oldest first, to Processing.
	ClaimBatch(ctx context.Context, max int) ([]models.SyncQueueEntry, error)

	// Complete marks a claimed entry as pushed and updates the record's sync
	// bookkeeping. remoteVersion is the server updatedAt of the written
	// document, if known.
	Complete(ctx context.Context, entry models.SyncQueueEntry, remoteID *string, remoteVersion *time.Time) error

	// Fail records a failed push. Permanent failures and spent budgets are
	// terminal; everything else returns the entry to Pending.
	Fail(ctx context.Context, entry models.SyncQueueEntry, cause error, permanent bool) error

	// Release returns a claimed entry that was never pushed to Pending and
	// gives back the attempt its claim charged. LastError is kept.
	Release(ctx context.Context, entry models.SyncQueueEntry) error

	// ResetForRetry reopens a terminally failed entry with a fresh budget.
	ResetForRetry(ctx context.Context, entryID int64) (models.SyncQueueEntry, error)

	ListFailed(ctx context.Context, filter models.QueueFilter) ([]models.SyncQueueEntry, error)

	// PendingCount counts Pending and Processing entries.
	PendingCount(ctx context.Context) (int, error)

	// ObservePendingCount emits the pending count now and after every queue
	// change until ctx is done.
	ObservePendingCount(ctx context.Context) <-chan int

	// RecoverProcessing returns entries orphaned in Processing by a killed
	// process to Pending.
	RecoverProcessing(ctx context.Context) (int64, error)

	// Purge removes Completed entries last touched before the cutoff.
	Purge(ctx context.Context, before time.Time) (int64, error)
}

// RecordService is the local write path. Every mutation writes the record and
// its queue entry in one local transaction.
type RecordService interface {
	// MutateAndEnqueue applies op to rec in the local store and enqueues the
	// matching remote mutation atomically. Create assigns an id when rec has
	// none. Delete of an event is a soft delete through its status.
	MutateAndEnqueue(ctx context.Context, op models.Operation, rec models.Record) (models.SyncQueueEntry, error)

	Create(ctx context.Context, rec models.Record) error
	Update(ctx context.Context, rec models.Record) error
	Delete(ctx context.Context, table models.TableName, id string) error

	// Load fills a typed record, sync meta included.
	Load(ctx context.Context, table models.TableName, id string) (models.Record, error)
	List(ctx context.Context, table models.TableName, q models.RecordQuery) ([]models.Record, error)
	Count(ctx context.Context, table models.TableName, q models.RecordQuery) (int, error)
}

// QueueProcessor pushes claimed queue entries to the remote store.
type QueueProcessor interface {
	ProcessQueue(ctx context.Context) (models.ProcessResult, error)
}

// Reconciler merges remote changes into the local store.
type Reconciler interface {
	Pull(ctx context.Context, req models.PullRequest) (models.PullResult, error)
}

// SyncCoordinator decides when sync passes run and reports their status.
type SyncCoordinator interface {
	// Start begins periodic passes: push-only ticks with a pull folded in
	// once per pull interval. Calling Start while running is a no-op.
	Start(ctx context.Context)
	// Stop ends periodic passes and waits for passes it started.
	Stop()
	// Tick runs one push pass now.
	Tick(ctx context.Context) (models.ProcessResult, error)
	// TriggerSync pulls tables (all synced tables when none are given) and
	// then pushes the queue.
	TriggerSync(ctx context.Context, tables ...models.TableName) (models.SyncReport, error)
	Status() models.SyncStatus
	// NotifyEnqueued requests a push pass after a local mutation. It is
	// ignored while Stop is waiting for running passes.
	NotifyEnqueued()
}

// EnqueueNotifier is told about every successful local mutation.
type EnqueueNotifier interface {
	NotifyEnqueued()
}
