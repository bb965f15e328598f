package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/gig-sync/internal/config"
	"github.com/MKhiriev/gig-sync/internal/logger"
)

// ClientStorages groups the client's local store repositories. They share one
// SQLite handle, so a transaction opened with DB.WithinTx spans all of them.
type ClientStorages struct {
	DB                  *DB
	RecordRepository    RecordRepository
	SyncQueueRepository SyncQueueRepository
	WatermarkRepository WatermarkRepository
}

// NewClientStorages opens the SQLite file named by cfg.DB.DSN (creating it if
// needed), applies pending migrations and wires the repositories.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		DB:                  db,
		RecordRepository:    NewRecordRepository(db, logger),
		SyncQueueRepository: NewSyncQueueRepository(db, logger),
		WatermarkRepository: NewWatermarkRepository(db, logger),
	}, nil
}

func (s *ClientStorages) Close() error {
	return s.DB.Close()
}
