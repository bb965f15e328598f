package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/internal/validators"
	"github.com/MKhiriev/gig-sync/models"
)

// defaultQueryLimit applies to queries that do not set a limit.
const defaultQueryLimit = 100

// DocumentServiceWrapper decorates a DocumentService, e.g. with validation.
type DocumentServiceWrapper interface {
	Wrap(DocumentService) DocumentService
}

type DocumentValidationService struct {
	inner     DocumentService
	validator validators.Validator
}

func NewDocumentValidationService() DocumentServiceWrapper {
	return &DocumentValidationService{
		validator: validators.NewDocumentValidator(),
	}
}

func (v *DocumentValidationService) Insert(ctx context.Context, collection models.TableName, ownerID string, req models.InsertRequest) (models.Document, error) {
	if err := v.validateCollection(ctx, collection); err != nil {
		return models.Document{}, err
	}
	if ownerID == "" {
		return models.Document{}, ErrNoUserID
	}
	if err := v.validator.Validate(ctx, req); err != nil {
		logger.FromContext(ctx).Err(err).Str("collection", collection.String()).Msg("invalid insert request")
		return models.Document{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Insert(ctx, collection, ownerID, req)
}

func (v *DocumentValidationService) Update(ctx context.Context, collection models.TableName, id string, fields json.RawMessage) (models.Document, error) {
	if err := v.validateCollection(ctx, collection); err != nil {
		return models.Document{}, err
	}
	if err := v.validator.Validate(ctx, models.UpdateRequest{Fields: fields}); err != nil {
		logger.FromContext(ctx).Err(err).Str("collection", collection.String()).Str("id", id).Msg("invalid update request")
		return models.Document{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Update(ctx, collection, id, fields)
}

func (v *DocumentValidationService) Delete(ctx context.Context, collection models.TableName, id string) error {
	if err := v.validateCollection(ctx, collection); err != nil {
		return err
	}

	return v.inner.Delete(ctx, collection, id)
}

func (v *DocumentValidationService) Query(ctx context.Context, collection models.TableName, q models.Query) ([]models.Document, error) {
	if err := v.validateCollection(ctx, collection); err != nil {
		return nil, err
	}

	if q.Limit > validators.MaxQueryLimit {
		q.Limit = validators.MaxQueryLimit
	}
	if err := v.validator.Validate(ctx, q); err != nil {
		logger.FromContext(ctx).Err(err).Str("collection", collection.String()).Msg("invalid query")
		return nil, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	if q.Limit == 0 {
		q.Limit = defaultQueryLimit
	}

	return v.inner.Query(ctx, collection, q)
}

func (v *DocumentValidationService) validateCollection(ctx context.Context, collection models.TableName) error {
	if err := v.validator.Validate(ctx, collection); err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownCollection, err)
	}
	return nil
}

func (v *DocumentValidationService) Wrap(wrapped DocumentService) DocumentService {
	v.inner = wrapped
	return v
}
