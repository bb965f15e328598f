package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/gig-sync/internal/config"
	"github.com/MKhiriev/gig-sync/internal/logger"
)

// Storages groups the document server repositories.
type Storages struct {
	DB                 *DB
	DocumentRepository DocumentRepository
}

func NewStorages(ctx context.Context, cfg *config.ServerConfig, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg.DSN, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	return &Storages{
		DB:                 db,
		DocumentRepository: NewDocumentRepository(db, logger),
	}, nil
}

func (s *Storages) Close() error {
	return s.DB.Close()
}
