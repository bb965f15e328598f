package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/gig-sync/internal/adapter"
	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/internal/store"
	"github.com/MKhiriev/gig-sync/models"
)

const defaultBatchSize = 50

// localError marks a local store failure hit while pushing. It aborts the
// pass instead of being charged to the entry.
type localError struct {
	err error
}

func (e localError) Error() string { return e.err.Error() }

func (e localError) Unwrap() error { return e.err }

// pushed is what the remote store confirmed for one entry.
type pushed struct {
	remoteID *string
	// version is the server updatedAt of the written document, nil when the
	// server did not report one.
	version *time.Time
}

type queueProcessor struct {
	queue     SyncQueueService
	records   store.RecordRepository
	remote    adapter.RemoteStore
	probe     adapter.ConnectivityProbe
	codecs    Codecs
	batchSize int
	running   atomic.Bool
	logger    *logger.Logger
}

func NewQueueProcessor(queue SyncQueueService, records store.RecordRepository, remote adapter.RemoteStore, probe adapter.ConnectivityProbe, codecs Codecs, batchSize int, logger *logger.Logger) QueueProcessor {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &queueProcessor{
		queue:     queue,
		records:   records,
		remote:    remote,
		probe:     probe,
		codecs:    codecs,
		batchSize: batchSize,
		logger:    logger,
	}
}

func (p *queueProcessor) ProcessQueue(ctx context.Context) (models.ProcessResult, error) {
	if !p.running.CompareAndSwap(false, true) {
		return models.ProcessResult{}, ErrPassInProgress
	}
	defer p.running.Store(false)

	if p.probe != nil && !p.probe.IsOnline(ctx) {
		return models.ProcessResult{}, ErrOffline
	}

	var result models.ProcessResult

	entries, err := p.queue.ClaimBatch(ctx, p.batchSize)
	if err != nil {
		return result, err
	}

	// claimed entries are settled even when the pass is cancelled mid-way
	bookkeeping := context.WithoutCancel(ctx)

	for i, entry := range entries {
		if ctx.Err() != nil {
			if err = p.release(bookkeeping, entries[i:]); err != nil {
				return result, err
			}
			break
		}

		log := p.logger.With().
			Int64("entry_id", entry.ID).
			Str("table", entry.TableName.String()).
			Str("local_id", entry.LocalRecordID).
			Str("operation", string(entry.Operation)).
			Int("attempt", entry.Attempts).
			Logger()

		confirmed, pushErr := p.push(ctx, entry)

		var local localError
		if errors.As(pushErr, &local) {
			if err = p.release(bookkeeping, entries[i:]); err != nil {
				return result, errors.Join(local.err, err)
			}
			return result, local.err
		}

		// a cancelled pass says nothing about the remote store
		if pushErr != nil && ctx.Err() != nil {
			log.Debug().Err(pushErr).Msg("pass cancelled mid-push")
			if err = p.release(bookkeeping, entries[i:]); err != nil {
				return result, err
			}
			break
		}

		if pushErr != nil {
			permanent := isPermanent(pushErr)
			log.Warn().Err(pushErr).Bool("permanent", permanent).Msg("push failed")
			if err = p.queue.Fail(bookkeeping, entry, pushErr, permanent); err != nil {
				return result, fmt.Errorf("record push failure: %w", err)
			}
			result.Failed++
			continue
		}

		if err = p.queue.Complete(bookkeeping, entry, confirmed.remoteID, confirmed.version); err != nil {
			return result, fmt.Errorf("complete entry %d: %w", entry.ID, err)
		}
		log.Debug().Msg("entry pushed")
		result.Processed++
	}

	result.Remaining, err = p.queue.PendingCount(bookkeeping)
	if err != nil {
		return result, err
	}

	return result, nil
}

// release hands claimed entries that were not pushed back to Pending
// without charging them an attempt.
func (p *queueProcessor) release(ctx context.Context, entries []models.SyncQueueEntry) error {
	for _, entry := range entries {
		if err := p.queue.Release(ctx, entry); err != nil {
			return fmt.Errorf("release entry %d: %w", entry.ID, err)
		}
	}
	return nil
}

// push sends one entry to the remote store and returns what the store
// confirmed for the document it touched.
func (p *queueProcessor) push(ctx context.Context, entry models.SyncQueueEntry) (pushed, error) {
	snap, err := models.DecodeSnapshot(entry.Payload)
	if err != nil {
		return pushed{}, fmt.Errorf("%w: payload of entry %d: %w", ErrCodec, entry.ID, err)
	}

	fields, err := p.codecs.Canonical(entry.TableName, snap.Fields)
	if err != nil {
		return pushed{}, err
	}

	switch entry.Operation {
	case models.OperationCreate:
		return p.insert(ctx, entry, fields)

	case models.OperationUpdate:
		remoteID, err := p.resolveRemoteID(ctx, entry)
		if err != nil {
			return pushed{}, err
		}
		if remoteID == nil {
			return pushed{}, fmt.Errorf("%w: %s/%s", ErrRemoteIDMissing, entry.TableName, entry.LocalRecordID)
		}
		doc, err := p.remote.Update(ctx, entry.TableName, *remoteID, fields)
		if err != nil {
			return pushed{}, err
		}
		return pushed{remoteID: remoteID, version: doc.UpdatedAt}, nil

	case models.OperationDelete:
		remoteID, err := p.resolveRemoteID(ctx, entry)
		if err != nil {
			return pushed{}, err
		}
		// a create that was in flight when the record was deleted: the
		// idempotent insert yields the id of the document it created
		if remoteID == nil {
			created, err := p.insert(ctx, entry, fields)
			if err != nil {
				return pushed{}, err
			}
			remoteID = created.remoteID
		}
		err = p.remote.Delete(ctx, entry.TableName, *remoteID)
		if err != nil && !errors.Is(err, adapter.ErrNotFound) {
			return pushed{}, err
		}
		return pushed{remoteID: remoteID}, nil
	}

	return pushed{}, fmt.Errorf("%w: %q", ErrInvalidOperation, entry.Operation)
}

func (p *queueProcessor) insert(ctx context.Context, entry models.SyncQueueEntry, fields []byte) (pushed, error) {
	resp, err := p.remote.Insert(ctx, entry.TableName, models.InsertRequest{
		ClientID: entry.LocalRecordID,
		Fields:   fields,
	})
	if err != nil {
		return pushed{}, err
	}

	confirmed := pushed{remoteID: &resp.ID}
	if !resp.UpdatedAt.IsZero() {
		version := resp.UpdatedAt.UTC()
		confirmed.version = &version
	}
	return confirmed, nil
}

// resolveRemoteID prefers the id on the entry and falls back to the record.
func (p *queueProcessor) resolveRemoteID(ctx context.Context, entry models.SyncQueueEntry) (*string, error) {
	if entry.HasRemoteID() {
		return entry.RemoteID, nil
	}

	rec, err := p.records.Get(ctx, entry.TableName, entry.LocalRecordID)
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, localError{err: err}
	}
	if !rec.HasRemoteID() {
		return nil, nil
	}
	return rec.RemoteID, nil
}

func isPermanent(err error) bool {
	switch {
	case adapter.IsPermanent(err),
		errors.Is(err, ErrCodec),
		errors.Is(err, ErrUnknownTable),
		errors.Is(err, ErrInvalidOperation):
		return true
	}
	return false
}
