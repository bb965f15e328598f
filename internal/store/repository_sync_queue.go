package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/models"
)

// syncQueueRepository is the SQLite implementation of [SyncQueueRepository].
type syncQueueRepository struct {
	*DB
	logger *logger.Logger
}

func NewSyncQueueRepository(db *DB, logger *logger.Logger) SyncQueueRepository {
	return &syncQueueRepository{
		DB:     db,
		logger: logger,
	}
}

func scanQueueEntry(s rowScanner) (models.SyncQueueEntry, error) {
	var (
		e             models.SyncQueueEntry
		table         string
		remoteID      sql.NullString
		operation     string
		createdAt     int64
		lastAttemptAt sql.NullInt64
		lastError     sql.NullString
		status        string
	)

	err := s.Scan(
		&e.ID,
		&table,
		&e.LocalRecordID,
		&remoteID,
		&operation,
		&e.Payload,
		&createdAt,
		&lastAttemptAt,
		&e.Attempts,
		&lastError,
		&status,
	)
	if err != nil {
		return models.SyncQueueEntry{}, err
	}

	e.TableName = models.TableName(table)
	e.RemoteID = stringPtr(remoteID)
	e.Operation = models.Operation(operation)
	e.CreatedAt = fromNanos(createdAt)
	e.LastAttemptAt = timePtr(lastAttemptAt)
	e.LastError = stringPtr(lastError)
	e.Status = models.QueueStatus(status)

	return e, nil
}

func (r *syncQueueRepository) Insert(ctx context.Context, entry models.SyncQueueEntry) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := sqlite.Insert(SyncQueueTable).
		Columns(queueColumns[1:]...).
		Values(
			entry.TableName.String(),
			entry.LocalRecordID,
			nullString(entry.RemoteID),
			string(entry.Operation),
			entry.Payload,
			toNanos(entry.CreatedAt),
			nullNanos(entry.LastAttemptAt),
			entry.Attempts,
			nullString(entry.LastError),
			string(entry.Status),
		).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrOutstandingEntryExists
		}
		log.Err(err).
			Str("func", "syncQueueRepository.Insert").
			Str("table", entry.TableName.String()).
			Str("local_record_id", entry.LocalRecordID).
			Msg("failed to insert sync queue entry")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	r.touch(ctx, SyncQueueTable)
	return id, nil
}

func (r *syncQueueRepository) Update(ctx context.Context, entry models.SyncQueueEntry) error {
	log := logger.FromContext(ctx)

	query, args, err := sqlite.Update(SyncQueueTable).
		SetMap(map[string]any{
			"remote_id":       nullString(entry.RemoteID),
			"operation":       string(entry.Operation),
			"payload":         entry.Payload,
			"last_attempt_at": nullNanos(entry.LastAttemptAt),
			"attempts":        entry.Attempts,
			"last_error":      nullString(entry.LastError),
			"status":          string(entry.Status),
		}).
		Where(sq.Eq{"id": entry.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrOutstandingEntryExists
		}
		log.Err(err).
			Str("func", "syncQueueRepository.Update").
			Int64("entry_id", entry.ID).
			Str("status", string(entry.Status)).
			Msg("failed to update sync queue entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return ErrQueueEntryNotFound
	}

	r.touch(ctx, SyncQueueTable)
	return nil
}

func (r *syncQueueRepository) Get(ctx context.Context, id int64) (models.SyncQueueEntry, error) {
	query, args, err := sqlite.Select(queueColumns...).
		From(SyncQueueTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.SyncQueueEntry{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.one(ctx, "syncQueueRepository.Get", query, args)
}

func (r *syncQueueRepository) FindOutstanding(ctx context.Context, table models.TableName, localID string) (models.SyncQueueEntry, error) {
	query, args, err := sqlite.Select(queueColumns...).
		From(SyncQueueTable).
		Where(sq.Eq{
			"table_name":      table.String(),
			"local_record_id": localID,
			"status":          statusStrings(models.OutstandingStatuses()),
		}).
		ToSql()
	if err != nil {
		return models.SyncQueueEntry{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.one(ctx, "syncQueueRepository.FindOutstanding", query, args)
}

func (r *syncQueueRepository) one(ctx context.Context, fn, query string, args []any) (models.SyncQueueEntry, error) {
	entry, err := scanQueueEntry(r.conn(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncQueueEntry{}, ErrQueueEntryNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Msg("failed to scan sync queue row")
		return models.SyncQueueEntry{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return entry, nil
}

func (r *syncQueueRepository) ListClaimable(ctx context.Context, limit int) ([]models.SyncQueueEntry, error) {
	b := sqlite.Select(queueColumns...).
		From(SyncQueueTable).
		Where(sq.Eq{"status": []string{string(models.QueueStatusPending), string(models.QueueStatusFailed)}}).
		Where(sq.Lt{"attempts": models.MaxRetryAttempts}).
		OrderBy("created_at ASC", "id ASC")
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.many(ctx, "syncQueueRepository.ListClaimable", query, args)
}

func (r *syncQueueRepository) List(ctx context.Context, filter models.QueueFilter) ([]models.SyncQueueEntry, error) {
	query, args, err := buildQueueList(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.many(ctx, "syncQueueRepository.List", query, args)
}

func (r *syncQueueRepository) many(ctx context.Context, fn, query string, args []any) ([]models.SyncQueueEntry, error) {
	log := logger.FromContext(ctx)

	rows, err := r.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to execute sync queue query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.SyncQueueEntry, 0, 16)
	for rows.Next() {
		entry, scanErr := scanQueueEntry(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", fn).Msg("failed to scan sync queue row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

func (r *syncQueueRepository) Count(ctx context.Context, statuses ...models.QueueStatus) (int, error) {
	b := sqlite.Select("COUNT(*)").From(SyncQueueTable)
	if len(statuses) > 0 {
		b = b.Where(sq.Eq{"status": statusStrings(statuses)})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var n int
	if err = r.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return n, nil
}

func (r *syncQueueRepository) RecoverProcessing(ctx context.Context) (int64, error) {
	query, args, err := sqlite.Update(SyncQueueTable).
		Set("status", string(models.QueueStatusPending)).
		Where(sq.Eq{"status": string(models.QueueStatusProcessing)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.exec(ctx, "syncQueueRepository.RecoverProcessing", query, args)
}

func (r *syncQueueRepository) PurgeCompleted(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := sqlite.Delete(SyncQueueTable).
		Where(sq.Eq{"status": string(models.QueueStatusCompleted)}).
		Where(sq.Expr("COALESCE(last_attempt_at, created_at) < ?", toNanos(before))).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.exec(ctx, "syncQueueRepository.PurgeCompleted", query, args)
}

func (r *syncQueueRepository) exec(ctx context.Context, fn, query string, args []any) (int64, error) {
	res, err := r.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Msg("failed to execute sync queue statement")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	n, _ := res.RowsAffected()
	if n > 0 {
		r.touch(ctx, SyncQueueTable)
	}
	return n, nil
}
