package service

import (
	"github.com/MKhiriev/gig-sync/internal/config"
	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/internal/store"
)

type Services struct {
	DocumentService DocumentService
	AuthService     AuthService
	HealthService   HealthService
}

func NewServices(storages *store.Storages, cfg *config.ServerConfig, logger *logger.Logger) *Services {
	documents := NewDocumentValidationService().Wrap(NewDocumentService(storages.DocumentRepository, logger))

	return &Services{
		DocumentService: documents,
		AuthService:     NewAuthService(cfg, logger),
		HealthService:   NewHealthService(storages.DB, logger),
	}
}
