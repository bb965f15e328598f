package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/gig-sync/internal/logger"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type healthService struct {
	db     Pinger
	logger *logger.Logger
}

func NewHealthService(db Pinger, logger *logger.Logger) HealthService {
	return &healthService{db: db, logger: logger}
}

func (h *healthService) Ping(ctx context.Context) error {
	if err := h.db.PingContext(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Msg("database ping failed")
		return fmt.Errorf("%w: %w", ErrDatabaseUnavailable, err)
	}
	return nil
}
