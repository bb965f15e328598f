package store

import (
	"context"
	"time"

	"github.com/MKhiriev/gig-sync/models"
)

// RecordRepository stores synced entities of every table in the shared row
// shape (id, remote_id, data, updated_at, synced_at, is_dirty, deleted).
// All methods join the transaction carried by ctx, if any.
type RecordRepository interface {
	Get(ctx context.Context, table models.TableName, id string) (models.LocalRecord, error)
	FindByRemoteID(ctx context.Context, table models.TableName, remoteID string) (models.LocalRecord, error)
	Insert(ctx context.Context, rec models.LocalRecord) error
	Update(ctx context.Context, rec models.LocalRecord) error
	// MarkSynced stamps remote_id, remote_version and synced_at and clears
	// is_dirty only when the stored updated_at still equals expectedUpdatedAt.
	// Nil remoteID or remoteVersion keep the stored values.
	MarkSynced(ctx context.Context, table models.TableName, id string, remoteID *string, remoteVersion *time.Time, syncedAt, expectedUpdatedAt time.Time) (cleared bool, err error)
	Delete(ctx context.Context, table models.TableName, id string) error
	Query(ctx context.Context, table models.TableName, q models.RecordQuery) ([]models.LocalRecord, error)
	Count(ctx context.Context, table models.TableName, q models.RecordQuery) (int, error)
}

// SyncQueueRepository persists sync_queue rows. State transitions live in the
// service layer; the repository only reads and writes rows.
type SyncQueueRepository interface {
	Insert(ctx context.Context, entry models.SyncQueueEntry) (int64, error)
	Update(ctx context.Context, entry models.SyncQueueEntry) error
	Get(ctx context.Context, id int64) (models.SyncQueueEntry, error)
	FindOutstanding(ctx context.Context, table models.TableName, localID string) (models.SyncQueueEntry, error)
	// ListClaimable returns Pending and Failed entries with attempts below
	// the budget, oldest first.
	ListClaimable(ctx context.Context, limit int) ([]models.SyncQueueEntry, error)
	List(ctx context.Context, filter models.QueueFilter) ([]models.SyncQueueEntry, error)
	Count(ctx context.Context, statuses ...models.QueueStatus) (int, error)
	// RecoverProcessing reverts entries left Processing by a killed process.
	RecoverProcessing(ctx context.Context) (int64, error)
	PurgeCompleted(ctx context.Context, before time.Time) (int64, error)
}

// WatermarkRepository keeps the newest pulled remote update time per table
// and user.
type WatermarkRepository interface {
	Get(ctx context.Context, table models.TableName, userID string) (*time.Time, error)
	// Advance moves the watermark forward; older values are ignored.
	Advance(ctx context.Context, table models.TableName, userID string, watermark time.Time) error
}
