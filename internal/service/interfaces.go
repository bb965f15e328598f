package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MKhiriev/gig-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// DocumentService is the document server's collection API.
type DocumentService interface {
	// Insert stores a new document owned by ownerID. Repeating an insert
	// with the same ClientID returns the original document.
	Insert(ctx context.Context, collection models.TableName, ownerID string, req models.InsertRequest) (models.Document, error)
	// Update merges the top-level keys of fields into the document.
	Update(ctx context.Context, collection models.TableName, id string, fields json.RawMessage) (models.Document, error)
	// Delete leaves a tombstone that later queries return.
	Delete(ctx context.Context, collection models.TableName, id string) error
	Query(ctx context.Context, collection models.TableName, q models.Query) ([]models.Document, error)
}

type AuthService interface {
	CreateToken(ctx context.Context, userID string, ttl time.Duration) (string, error)
	// ParseToken verifies a bearer token and returns its user id.
	ParseToken(ctx context.Context, token string) (string, error)
}

type HealthService interface {
	Ping(ctx context.Context) error
}
