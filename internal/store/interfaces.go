package store

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/gig-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// DocumentRepository is the document server's PostgreSQL-backed store.
type DocumentRepository interface {
	// Insert stores a new document. Inserting a second document with the same
	// (collection, ClientID) returns the existing one unchanged.
	Insert(ctx context.Context, collection, ownerID string, doc models.Document) (models.Document, error)
	// Patch merges the top-level keys of fields into a live document.
	Patch(ctx context.Context, collection, id string, fields json.RawMessage) (models.Document, error)
	// Delete turns a live document into a tombstone.
	Delete(ctx context.Context, collection, id string) error
	Query(ctx context.Context, collection string, q models.Query) ([]models.Document, error)
}
