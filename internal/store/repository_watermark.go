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

type watermarkRepository struct {
	*DB
	logger *logger.Logger
}

func NewWatermarkRepository(db *DB, logger *logger.Logger) WatermarkRepository {
	return &watermarkRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *watermarkRepository) Get(ctx context.Context, table models.TableName, userID string) (*time.Time, error) {
	query, args, err := sqlite.Select("watermark").
		From(watermarksTable).
		Where(sq.Eq{"table_name": table.String(), "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var n int64
	err = r.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "watermarkRepository.Get").
			Str("table", table.String()).
			Msg("failed to read watermark")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	t := fromNanos(n)
	return &t, nil
}

func (r *watermarkRepository) Advance(ctx context.Context, table models.TableName, userID string, watermark time.Time) error {
	query, args, err := sqlite.Insert(watermarksTable).
		Columns("table_name", "user_id", "watermark").
		Values(table.String(), userID, toNanos(watermark)).
		Suffix("ON CONFLICT (table_name, user_id) DO UPDATE SET watermark = MAX(watermark, excluded.watermark)").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.conn(ctx).ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "watermarkRepository.Advance").
			Str("table", table.String()).
			Time("watermark", watermark).
			Msg("failed to advance watermark")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	r.touch(ctx, watermarksTable)
	return nil
}
