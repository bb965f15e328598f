package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/internal/store"
	"github.com/MKhiriev/gig-sync/models"
)

// claimScanFactor bounds how many claimable rows a claim reads per requested
// entry. Rows still inside their backoff window are skipped in Go.
const claimScanFactor = 10

const cancelledByDelete = "cancelled: record deleted before its create was pushed"

type syncQueueService struct {
	db       store.Transactor
	changes  *store.ChangeFeed
	queue    store.SyncQueueRepository
	records  store.RecordRepository
	schedule RetrySchedule
	clock    clock.Clock
	logger   *logger.Logger
}

func NewSyncQueueService(storages *store.ClientStorages, schedule RetrySchedule, clk clock.Clock, logger *logger.Logger) SyncQueueService {
	return &syncQueueService{
		db:       storages.DB,
		changes:  storages.DB.Changes(),
		queue:    storages.SyncQueueRepository,
		records:  storages.RecordRepository,
		schedule: schedule,
		clock:    clk,
		logger:   logger,
	}
}

func (s *syncQueueService) Enqueue(ctx context.Context, req models.EnqueueRequest) (models.SyncQueueEntry, bool, error) {
	switch {
	case !req.Table.Valid():
		return models.SyncQueueEntry{}, false, fmt.Errorf("%w: %q", ErrUnknownTable, req.Table)
	case !req.Op.Valid():
		return models.SyncQueueEntry{}, false, fmt.Errorf("%w: %q", ErrInvalidOperation, req.Op)
	case req.LocalID == "":
		return models.SyncQueueEntry{}, false, ErrMissingRecordID
	}
	if req.RemoteID != nil && *req.RemoteID == "" {
		req.RemoteID = nil
	}

	var (
		entry  models.SyncQueueEntry
		queued bool
	)
	err := s.db.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.queue.FindOutstanding(ctx, req.Table, req.LocalID)
		if errors.Is(err, store.ErrQueueEntryNotFound) {
			entry, queued, err = s.open(ctx, req)
			return err
		}
		if err != nil {
			return err
		}

		entry, queued, err = s.coalesce(ctx, existing, req)
		return err
	})
	if err != nil {
		return models.SyncQueueEntry{}, false, err
	}

	return entry, queued, nil
}

// open inserts a new Pending entry. Without a remote copy an update has to
// create the document and a delete has nothing to remove.
func (s *syncQueueService) open(ctx context.Context, req models.EnqueueRequest) (models.SyncQueueEntry, bool, error) {
	op := req.Op
	if req.RemoteID == nil {
		switch op {
		case models.OperationUpdate:
			op = models.OperationCreate
		case models.OperationDelete:
			return models.SyncQueueEntry{}, false, nil
		}
	}

	entry := models.SyncQueueEntry{
		TableName:     req.Table,
		LocalRecordID: req.LocalID,
		RemoteID:      req.RemoteID,
		Operation:     op,
		Payload:       req.Payload,
		CreatedAt:     s.clock.Now().UTC(),
		Status:        models.QueueStatusPending,
	}

	id, err := s.queue.Insert(ctx, entry)
	if err != nil {
		return models.SyncQueueEntry{}, false, err
	}
	entry.ID = id

	return entry, true, nil
}

// coalesce folds a mutation into the record's outstanding entry.
func (s *syncQueueService) coalesce(ctx context.Context, existing models.SyncQueueEntry, req models.EnqueueRequest) (models.SyncQueueEntry, bool, error) {
	switch existing.Operation {
	case models.OperationDelete:
		return models.SyncQueueEntry{}, false, ErrRecordDeleted

	case models.OperationCreate:
		if req.Op == models.OperationDelete {
			if existing.Status == models.QueueStatusPending {
				note := cancelledByDelete
				existing.Status = models.QueueStatusCompleted
				existing.LastError = &note
				if err := s.queue.Update(ctx, existing); err != nil {
					return models.SyncQueueEntry{}, false, err
				}
				return existing, false, nil
			}
			// the create is in flight; completion turns this into a follow-up delete
			existing.Operation = models.OperationDelete
		}

	case models.OperationUpdate:
		if req.Op == models.OperationDelete {
			existing.Operation = models.OperationDelete
		}
	}

	existing.Payload = req.Payload
	if !existing.HasRemoteID() && req.RemoteID != nil {
		existing.RemoteID = req.RemoteID
	}

	if err := s.queue.Update(ctx, existing); err != nil {
		return models.SyncQueueEntry{}, false, err
	}

	return existing, true, nil
}

func (s *syncQueueService) ClaimBatch(ctx context.Context, max int) ([]models.SyncQueueEntry, error) {
	if max <= 0 {
		return nil, nil
	}

	now := s.clock.Now().UTC()
	claimed := make([]models.SyncQueueEntry, 0, max)

	err := s.db.WithinTx(ctx, func(ctx context.Context) error {
		candidates, err := s.queue.ListClaimable(ctx, max*claimScanFactor)
		if err != nil {
			return err
		}

		for _, entry := range candidates {
			if len(claimed) == max {
				break
			}
			if !s.schedule.Due(entry, now) {
				continue
			}

			attemptAt := now
			entry.Status = models.QueueStatusProcessing
			entry.Attempts++
			entry.LastAttemptAt = &attemptAt

			if err = s.queue.Update(ctx, entry); err != nil {
				// a stale failed entry whose record already has a newer outstanding one
				if errors.Is(err, store.ErrOutstandingEntryExists) {
					continue
				}
				return err
			}
			claimed = append(claimed, entry)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("claim batch: %w", err)
	}

	return claimed, nil
}

// superseded reports whether the stored entry was rewritten by a local
// mutation after entry was claimed.
func superseded(claimed, current models.SyncQueueEntry) bool {
	return current.Operation != claimed.Operation || !bytes.Equal(current.Payload, claimed.Payload)
}

func (s *syncQueueService) Complete(ctx context.Context, entry models.SyncQueueEntry, remoteID *string, remoteVersion *time.Time) error {
	if remoteID == nil || *remoteID == "" {
		remoteID = entry.RemoteID
	}

	return s.db.WithinTx(ctx, func(ctx context.Context) error {
		now := s.clock.Now().UTC()

		current, err := s.queue.Get(ctx, entry.ID)
		if err != nil {
			return err
		}
		if current.Status == models.QueueStatusCompleted {
			return nil
		}

		// the completed row records what was actually pushed
		done := entry
		done.Status = models.QueueStatusCompleted
		done.RemoteID = remoteID
		done.Attempts = max(current.Attempts, entry.Attempts)
		done.LastAttemptAt = current.LastAttemptAt
		done.LastError = nil
		if err = s.queue.Update(ctx, done); err != nil {
			return err
		}

		if superseded(entry, current) {
			op := current.Operation
			if op == models.OperationCreate && remoteID != nil {
				op = models.OperationUpdate
			}
			followUp := models.SyncQueueEntry{
				TableName:     current.TableName,
				LocalRecordID: current.LocalRecordID,
				RemoteID:      remoteID,
				Operation:     op,
				Payload:       current.Payload,
				CreatedAt:     now,
				Status:        models.QueueStatusPending,
			}
			if _, err = s.queue.Insert(ctx, followUp); err != nil {
				return fmt.Errorf("open follow-up entry: %w", err)
			}
		}

		return s.settleRecord(ctx, done, remoteVersion, now)
	})
}

// settleRecord applies a completed push to the local record: a delete drops
// the tombstone, anything else stamps the sync bookkeeping.
func (s *syncQueueService) settleRecord(ctx context.Context, done models.SyncQueueEntry, remoteVersion *time.Time, now time.Time) error {
	if done.Operation == models.OperationDelete {
		err := s.records.Delete(ctx, done.TableName, done.LocalRecordID)
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	snap, err := models.DecodeSnapshot(done.Payload)
	if err != nil {
		return fmt.Errorf("%w: entry %d payload: %w", ErrCodec, done.ID, err)
	}

	cleared, err := s.records.MarkSynced(ctx, done.TableName, done.LocalRecordID, done.RemoteID, remoteVersion, now, snap.UpdatedAt)
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if !cleared {
		logger.FromContext(ctx).Debug().
			Str("func", "syncQueueService.settleRecord").
			Str("table", done.TableName.String()).
			Str("local_id", done.LocalRecordID).
			Msg("record changed during push, left dirty")
	}
	return nil
}

func (s *syncQueueService) Fail(ctx context.Context, entry models.SyncQueueEntry, cause error, permanent bool) error {
	msg := "unknown error"
	if cause != nil {
		msg = cause.Error()
	}

	return s.db.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.queue.Get(ctx, entry.ID)
		if err != nil {
			return err
		}
		if current.Status == models.QueueStatusCompleted {
			return nil
		}

		current.Attempts = max(current.Attempts, entry.Attempts)
		current.LastError = &msg

		switch {
		// a rejected payload that was already replaced deserves a try of its own
		case permanent && !superseded(entry, current):
			current.Attempts = max(current.Attempts, models.MaxRetryAttempts)
			current.Status = models.QueueStatusFailed
		case current.IsExhausted():
			current.Status = models.QueueStatusFailed
		default:
			current.Status = models.QueueStatusPending
		}

		if current.Status == models.QueueStatusFailed {
			s.logger.Warn().
				Str("func", "syncQueueService.Fail").
				Int64("entry_id", current.ID).
				Str("table", current.TableName.String()).
				Str("local_id", current.LocalRecordID).
				Int("attempts", current.Attempts).
				Bool("permanent", permanent).
				Str("error", msg).
				Msg("queue entry failed terminally")
		}

		return s.queue.Update(ctx, current)
	})
}

func (s *syncQueueService) Release(ctx context.Context, entry models.SyncQueueEntry) error {
	return s.db.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.queue.Get(ctx, entry.ID)
		if err != nil {
			return err
		}
		if current.Status != models.QueueStatusProcessing {
			return nil
		}

		// a released entry is due again at once
		current.Attempts = max(current.Attempts-1, 0)
		current.LastAttemptAt = nil
		current.Status = models.QueueStatusPending
		return s.queue.Update(ctx, current)
	})
}

func (s *syncQueueService) ResetForRetry(ctx context.Context, entryID int64) (models.SyncQueueEntry, error) {
	var entry models.SyncQueueEntry

	err := s.db.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		entry, err = s.queue.Get(ctx, entryID)
		if err != nil {
			return err
		}
		if entry.Status != models.QueueStatusFailed {
			return fmt.Errorf("%w: entry %d is %s", ErrEntryNotFailed, entryID, entry.Status)
		}

		outstanding, err := s.queue.FindOutstanding(ctx, entry.TableName, entry.LocalRecordID)
		switch {
		case err == nil:
			return fmt.Errorf("%w: entry %d", ErrEntrySuperseded, outstanding.ID)
		case !errors.Is(err, store.ErrQueueEntryNotFound):
			return err
		}

		entry.Attempts = 0
		entry.LastAttemptAt = nil
		entry.LastError = nil
		entry.Status = models.QueueStatusPending
		return s.queue.Update(ctx, entry)
	})
	if err != nil {
		return models.SyncQueueEntry{}, err
	}

	return entry, nil
}

func (s *syncQueueService) ListFailed(ctx context.Context, filter models.QueueFilter) ([]models.SyncQueueEntry, error) {
	filter.Statuses = []models.QueueStatus{models.QueueStatusFailed}
	return s.queue.List(ctx, filter)
}

func (s *syncQueueService) PendingCount(ctx context.Context) (int, error) {
	return s.queue.Count(ctx, models.OutstandingStatuses()...)
}

func (s *syncQueueService) ObservePendingCount(ctx context.Context) <-chan int {
	out := make(chan int, 1)

	var (
		changes <-chan struct{}
		cancel  = func() {}
	)
	if s.changes != nil {
		changes, cancel = s.changes.Subscribe(store.SyncQueueTable)
	}

	go func() {
		defer close(out)
		defer cancel()

		last := -1
		emit := func() bool {
			n, err := s.PendingCount(ctx)
			if err != nil {
				if ctx.Err() == nil {
					s.logger.Err(err).Str("func", "syncQueueService.ObservePendingCount").Msg("failed to count pending entries")
				}
				return ctx.Err() == nil
			}
			if n == last {
				return true
			}
			last = n
			select {
			case out <- n:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !emit() {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok || !emit() {
					return
				}
			}
		}
	}()

	return out
}

func (s *syncQueueService) RecoverProcessing(ctx context.Context) (int64, error) {
	n, err := s.queue.RecoverProcessing(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info().Int64("entries", n).Msg("recovered entries left processing by a previous run")
	}
	return n, nil
}

func (s *syncQueueService) Purge(ctx context.Context, before time.Time) (int64, error) {
	return s.queue.PurgeCompleted(ctx, before)
}
