// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/models"
)

// recordRepository is the SQLite implementation of [RecordRepository].
type recordRepository struct {
	*DB
	logger *logger.Logger
}

func NewRecordRepository(db *DB, logger *logger.Logger) RecordRepository {
	return &recordRepository{
		DB:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(table models.TableName, s rowScanner) (models.LocalRecord, error) {
	var (
		rec       models.LocalRecord
		remoteID  sql.NullString
		data      string
		updatedAt int64
		syncedAt  sql.NullInt64
		version   sql.NullInt64
		isDirty   int
		deleted   int
	)

	if err := s.Scan(&rec.ID, &remoteID, &data, &updatedAt, &syncedAt, &version, &isDirty, &deleted); err != nil {
		return models.LocalRecord{}, err
	}

	rec.Table = table
	rec.RemoteID = stringPtr(remoteID)
	rec.Data = json.RawMessage(data)
	rec.UpdatedAt = fromNanos(updatedAt)
	rec.SyncedAt = timePtr(syncedAt)
	rec.RemoteVersion = timePtr(version)
	rec.IsDirty = isDirty != 0
	rec.Deleted = deleted != 0

	return rec, nil
}

func (r *recordRepository) getBy(ctx context.Context, table models.TableName, column, value string) (models.LocalRecord, error) {
	log := logger.FromContext(ctx)

	name, err := recordTable(table)
	if err != nil {
		return models.LocalRecord{}, err
	}

	query, args, err := sqlite.Select(recordColumns...).From(name).Where(sq.Eq{column: value}).ToSql()
	if err != nil {
		return models.LocalRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rec, err := scanRecord(table, r.conn(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.LocalRecord{}, ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.getBy").
			Str("table", name).
			Str(column, value).
			Msg("failed to scan record row")
		return models.LocalRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return rec, nil
}

func (r *recordRepository) Get(ctx context.Context, table models.TableName, id string) (models.LocalRecord, error) {
	return r.getBy(ctx, table, "id", id)
}

func (r *recordRepository) FindByRemoteID(ctx context.Context, table models.TableName, remoteID string) (models.LocalRecord, error) {
	return r.getBy(ctx, table, "remote_id", remoteID)
}

func (r *recordRepository) Insert(ctx context.Context, rec models.LocalRecord) error {
	log := logger.FromContext(ctx)

	name, err := recordTable(rec.Table)
	if err != nil {
		return err
	}

	query, args, err := sqlite.Insert(name).
		Columns(recordColumns...).
		Values(
			rec.ID,
			nullString(rec.RemoteID),
			string(rec.Data),
			toNanos(rec.UpdatedAt),
			nullNanos(rec.SyncedAt),
			nullNanos(rec.RemoteVersion),
			boolToInt(rec.IsDirty),
			boolToInt(rec.Deleted),
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.conn(ctx).ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrRecordExists
		}
		log.Err(err).
			Str("func", "recordRepository.Insert").
			Str("table", name).
			Str("id", rec.ID).
			Msg("failed to insert record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	r.touch(ctx, name)
	return nil
}

func (r *recordRepository) Update(ctx context.Context, rec models.LocalRecord) error {
	log := logger.FromContext(ctx)

	name, err := recordTable(rec.Table)
	if err != nil {
		return err
	}

	query, args, err := sqlite.Update(name).
		SetMap(map[string]any{
			"remote_id":      nullString(rec.RemoteID),
			"data":           string(rec.Data),
			"updated_at":     toNanos(rec.UpdatedAt),
			"synced_at":      nullNanos(rec.SyncedAt),
			"remote_version": nullNanos(rec.RemoteVersion),
			"is_dirty":       boolToInt(rec.IsDirty),
			"deleted":        boolToInt(rec.Deleted),
		}).
		Where(sq.Eq{"id": rec.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrRecordExists
		}
		log.Err(err).
			Str("func", "recordRepository.Update").
			Str("table", name).
			Str("id", rec.ID).
			Msg("failed to update record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRecordNotFound
	}

	r.touch(ctx, name)
	return nil
}

func (r *recordRepository) MarkSynced(ctx context.Context, table models.TableName, id string, remoteID *string, remoteVersion *time.Time, syncedAt, expectedUpdatedAt time.Time) (bool, error) {
	log := logger.FromContext(ctx)

	name, err := recordTable(table)
	if err != nil {
		return false, err
	}

	query, args, err := sqlite.Update(name).
		Set("remote_id", sq.Expr("COALESCE(?, remote_id)", nullString(remoteID))).
		Set("synced_at", toNanos(syncedAt)).
		Set("remote_version", sq.Expr("COALESCE(?, remote_version)", nullNanos(remoteVersion))).
		Set("is_dirty", sq.Expr("CASE WHEN updated_at = ? THEN 0 ELSE is_dirty END", toNanos(expectedUpdatedAt))).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING is_dirty").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var isDirty int
	err = r.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&isDirty)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.MarkSynced").
			Str("table", name).
			Str("id", id).
			Msg("failed to mark record synced")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	r.touch(ctx, name)
	return isDirty == 0, nil
}

func (r *recordRepository) Delete(ctx context.Context, table models.TableName, id string) error {
	log := logger.FromContext(ctx)

	name, err := recordTable(table)
	if err != nil {
		return err
	}

	query, args, err := sqlite.Delete(name).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.Delete").
			Str("table", name).
			Str("id", id).
			Msg("failed to delete record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRecordNotFound
	}

	r.touch(ctx, name)
	return nil
}

func (r *recordRepository) Query(ctx context.Context, table models.TableName, q models.RecordQuery) ([]models.LocalRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildRecordSelect(table, q)
	if err != nil {
		return nil, err
	}

	rows, err := r.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.Query").
			Str("table", table.String()).
			Msg("failed to execute record query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.LocalRecord, 0, 16)
	for rows.Next() {
		rec, scanErr := scanRecord(table, rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		results = append(results, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return results, nil
}

func (r *recordRepository) Count(ctx context.Context, table models.TableName, q models.RecordQuery) (int, error) {
	query, args, err := buildRecordCount(table, q)
	if err != nil {
		return 0, err
	}

	var n int
	if err = r.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return n, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
