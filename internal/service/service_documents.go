package service

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/internal/store"
	"github.com/MKhiriev/gig-sync/models"
)

type documentService struct {
	documentRepository store.DocumentRepository

	logger *logger.Logger
}

func NewDocumentService(documentRepository store.DocumentRepository, logger *logger.Logger) DocumentService {
	return &documentService{
		documentRepository: documentRepository,
		logger:             logger,
	}
}

func (d *documentService) Insert(ctx context.Context, collection models.TableName, ownerID string, req models.InsertRequest) (models.Document, error) {
	return d.documentRepository.Insert(ctx, collection.String(), ownerID, models.Document{
		ClientID: req.ClientID,
		Fields:   req.Fields,
	})
}

func (d *documentService) Update(ctx context.Context, collection models.TableName, id string, fields json.RawMessage) (models.Document, error) {
	return d.documentRepository.Patch(ctx, collection.String(), id, fields)
}

func (d *documentService) Delete(ctx context.Context, collection models.TableName, id string) error {
	return d.documentRepository.Delete(ctx, collection.String(), id)
}

func (d *documentService) Query(ctx context.Context, collection models.TableName, q models.Query) ([]models.Document, error) {
	return d.documentRepository.Query(ctx, collection.String(), q)
}
