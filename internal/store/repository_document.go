package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/models"
)

// documentRepository is the PostgreSQL-backed implementation of
// [DocumentRepository]. Bodies live in a JSONB column of the "documents"
// table; deletes leave tombstones so incremental pulls observe them.
type documentRepository struct {
	*DB
	logger *logger.Logger
}

func NewDocumentRepository(db *DB, logger *logger.Logger) DocumentRepository {
	logger.Debug().Msg("creating document repository")
	return &documentRepository{
		DB:     db,
		logger: logger,
	}
}

func scanDocument(s rowScanner) (models.Document, error) {
	var (
		doc       models.Document
		clientID  sql.NullString
		fields    []byte
		updatedAt time.Time
	)

	if err := s.Scan(&doc.ID, &clientID, &fields, &updatedAt, &doc.Deleted); err != nil {
		return models.Document{}, err
	}

	doc.ClientID = clientID.String
	doc.Fields = json.RawMessage(fields)
	updatedAt = updatedAt.UTC()
	doc.UpdatedAt = &updatedAt

	return doc, nil
}

// Insert is idempotent on (collection, ClientID): a Create retried after a
// lost response gets the original document back.
func (r *documentRepository) Insert(ctx context.Context, collection, ownerID string, doc models.Document) (models.Document, error) {
	log := logger.FromContext(ctx)

	var clientID sql.NullString
	if doc.ClientID != "" {
		clientID = sql.NullString{String: doc.ClientID, Valid: true}
	}

	row := r.conn(ctx).QueryRowContext(ctx, insertDocument,
		collection, uuid.NewString(), clientID, ownerID, []byte(doc.Fields))

	saved, err := scanDocument(row)
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.Insert").
			Str("collection", collection).
			Str("client_id", doc.ClientID).
			Str("classification", r.classify(err)).
			Msg("failed to insert document")
		return models.Document{}, r.wrapErr(ErrExecutingStatement, err)
	}

	return saved, nil
}

func (r *documentRepository) Patch(ctx context.Context, collection, id string, fields json.RawMessage) (models.Document, error) {
	log := logger.FromContext(ctx)

	if _, err := uuid.Parse(id); err != nil {
		return models.Document{}, ErrDocumentNotFound
	}

	doc, err := scanDocument(r.conn(ctx).QueryRowContext(ctx, patchDocument, collection, id, []byte(fields)))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Document{}, ErrDocumentNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.Patch").
			Str("collection", collection).
			Str("id", id).
			Str("classification", r.classify(err)).
			Msg("failed to patch document")
		return models.Document{}, r.wrapErr(ErrExecutingStatement, err)
	}

	return doc, nil
}

func (r *documentRepository) Delete(ctx context.Context, collection, id string) error {
	log := logger.FromContext(ctx)

	if _, err := uuid.Parse(id); err != nil {
		return ErrDocumentNotFound
	}

	res, err := r.conn(ctx).ExecContext(ctx, deleteDocument, collection, id)
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.Delete").
			Str("collection", collection).
			Str("id", id).
			Str("classification", r.classify(err)).
			Msg("failed to delete document")
		return r.wrapErr(ErrExecutingStatement, err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDocumentNotFound
	}

	return nil
}

func (r *documentRepository) Query(ctx context.Context, collection string, q models.Query) ([]models.Document, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDocumentQuery(collection, q)
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.Query").
			Str("collection", collection).
			Msg("failed to create query")
		return nil, err
	}

	rows, err := r.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.Query").
			Str("collection", collection).
			Str("classification", r.classify(err)).
			Msg("failed to execute document query")
		return nil, r.wrapErr(ErrExecutingQuery, err)
	}
	defer rows.Close()

	docs := make([]models.Document, 0, 50)
	for rows.Next() {
		doc, scanErr := scanDocument(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "documentRepository.Query").
				Str("collection", collection).
				Msg("failed to scan document row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		docs = append(docs, doc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return docs, nil
}

// wrapErr wraps err with kind and, when the classifier deems it transient,
// with ErrTemporarilyUnavailable.
func (r *documentRepository) wrapErr(kind, err error) error {
	if r.IsRetryable(err) {
		return fmt.Errorf("%w: %w: %w", ErrTemporarilyUnavailable, kind, err)
	}
	return fmt.Errorf("%w: %w", kind, err)
}

func (r *documentRepository) classify(err error) string {
	if r.IsRetryable(err) {
		return Retryable.String()
	}
	return NonRetryable.String()
}
