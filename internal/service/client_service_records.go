package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/internal/store"
	"github.com/MKhiriev/gig-sync/internal/utils"
	"github.com/MKhiriev/gig-sync/models"
)

type recordService struct {
	db       store.Transactor
	records  store.RecordRepository
	queue    SyncQueueService
	codecs   Codecs
	ids      utils.IDGenerator
	clock    clock.Clock
	notifier EnqueueNotifier
	logger   *logger.Logger
}

func NewRecordService(storages *store.ClientStorages, queue SyncQueueService, codecs Codecs, ids utils.IDGenerator, clk clock.Clock, notifier EnqueueNotifier, logger *logger.Logger) RecordService {
	return &recordService{
		db:       storages.DB,
		records:  storages.RecordRepository,
		queue:    queue,
		codecs:   codecs,
		ids:      ids,
		clock:    clk,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *recordService) MutateAndEnqueue(ctx context.Context, op models.Operation, rec models.Record) (models.SyncQueueEntry, error) {
	if rec == nil {
		return models.SyncQueueEntry{}, fmt.Errorf("%w: nil record", ErrInvalidOperation)
	}
	table := rec.TableName()
	codec, err := s.codecs.Get(table)
	if err != nil {
		return models.SyncQueueEntry{}, err
	}

	// events keep their history remotely: deleting one publishes the status
	if event, ok := rec.(*models.Event); ok && op == models.OperationDelete {
		event.Status = models.EventStatusDeleted
		op = models.OperationUpdate
	}

	var (
		entry  models.SyncQueueEntry
		queued bool
	)
	err = s.db.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		switch op {
		case models.OperationCreate:
			entry, queued, err = s.create(ctx, codec, rec)
		case models.OperationUpdate, models.OperationDelete:
			entry, queued, err = s.modify(ctx, codec, op, rec)
		default:
			err = fmt.Errorf("%w: %q", ErrInvalidOperation, op)
		}
		return err
	})
	if err != nil {
		return models.SyncQueueEntry{}, err
	}

	if queued && s.notifier != nil {
		s.notifier.NotifyEnqueued()
	}
	return entry, nil
}

func (s *recordService) create(ctx context.Context, codec Codec, rec models.Record) (models.SyncQueueEntry, bool, error) {
	meta := rec.Meta()
	if meta.ID == "" {
		meta.ID = s.ids.Generate()
	}

	fields, err := codec.Encode(rec)
	if err != nil {
		return models.SyncQueueEntry{}, false, err
	}

	meta.UpdatedAt = s.clock.Now().UTC()
	meta.RemoteID = nil
	meta.SyncedAt = nil
	meta.RemoteVersion = nil
	meta.IsDirty = true
	meta.Deleted = false

	if err = s.records.Insert(ctx, models.LocalRecord{SyncMeta: *meta, Table: rec.TableName(), Data: fields}); err != nil {
		return models.SyncQueueEntry{}, false, err
	}

	return s.enqueue(ctx, models.OperationCreate, rec, fields)
}

func (s *recordService) modify(ctx context.Context, codec Codec, op models.Operation, rec models.Record) (models.SyncQueueEntry, bool, error) {
	meta := rec.Meta()
	if meta.ID == "" {
		return models.SyncQueueEntry{}, false, ErrMissingRecordID
	}

	current, err := s.records.Get(ctx, rec.TableName(), meta.ID)
	if err != nil {
		return models.SyncQueueEntry{}, false, err
	}
	if current.Deleted {
		return models.SyncQueueEntry{}, false, fmt.Errorf("%w: %s/%s", ErrRecordDeleted, current.Table, current.ID)
	}

	fields, err := codec.Encode(rec)
	if err != nil {
		return models.SyncQueueEntry{}, false, err
	}

	meta.RemoteID = current.RemoteID
	meta.SyncedAt = current.SyncedAt
	meta.RemoteVersion = current.RemoteVersion
	meta.UpdatedAt = nextUpdatedAt(current.UpdatedAt, s.clock.Now().UTC())
	meta.IsDirty = true
	meta.Deleted = op == models.OperationDelete

	row := models.LocalRecord{SyncMeta: *meta, Table: rec.TableName(), Data: fields}
	if err = s.records.Update(ctx, row); err != nil {
		return models.SyncQueueEntry{}, false, err
	}

	entry, queued, err := s.enqueue(ctx, op, rec, fields)
	if err != nil {
		return models.SyncQueueEntry{}, false, err
	}

	// nothing remote to delete: the tombstone can go right away
	if op == models.OperationDelete && !queued {
		if err = s.records.Delete(ctx, row.Table, row.ID); err != nil && !errors.Is(err, store.ErrRecordNotFound) {
			return models.SyncQueueEntry{}, false, err
		}
	}

	return entry, queued, nil
}

func (s *recordService) enqueue(ctx context.Context, op models.Operation, rec models.Record, fields []byte) (models.SyncQueueEntry, bool, error) {
	meta := rec.Meta()

	payload, err := models.EncodeSnapshot(models.Snapshot{UpdatedAt: meta.UpdatedAt, Fields: fields})
	if err != nil {
		return models.SyncQueueEntry{}, false, fmt.Errorf("%w: snapshot: %w", ErrCodec, err)
	}

	return s.queue.Enqueue(ctx, models.EnqueueRequest{
		Table:    rec.TableName(),
		LocalID:  meta.ID,
		Op:       op,
		Payload:  payload,
		RemoteID: meta.RemoteID,
	})
}

// nextUpdatedAt keeps a record's UpdatedAt strictly increasing even when the
// wall clock stalls or steps back.
func nextUpdatedAt(previous, now time.Time) time.Time {
	if now.After(previous) {
		return now
	}
	return previous.Add(time.Nanosecond)
}

func (s *recordService) Create(ctx context.Context, rec models.Record) error {
	_, err := s.MutateAndEnqueue(ctx, models.OperationCreate, rec)
	return err
}

func (s *recordService) Update(ctx context.Context, rec models.Record) error {
	_, err := s.MutateAndEnqueue(ctx, models.OperationUpdate, rec)
	return err
}

func (s *recordService) Delete(ctx context.Context, table models.TableName, id string) error {
	rec, err := s.Load(ctx, table, id)
	if err != nil {
		return err
	}
	_, err = s.MutateAndEnqueue(ctx, models.OperationDelete, rec)
	return err
}

func (s *recordService) Load(ctx context.Context, table models.TableName, id string) (models.Record, error) {
	row, err := s.records.Get(ctx, table, id)
	if err != nil {
		return nil, err
	}
	return s.codecs.Hydrate(row)
}

func (s *recordService) List(ctx context.Context, table models.TableName, q models.RecordQuery) ([]models.Record, error) {
	rows, err := s.records.Query(ctx, table, q)
	if err != nil {
		return nil, err
	}

	out := make([]models.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := s.codecs.Hydrate(row)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *recordService) Count(ctx context.Context, table models.TableName, q models.RecordQuery) (int, error) {
	return s.records.Count(ctx, table, q)
}
