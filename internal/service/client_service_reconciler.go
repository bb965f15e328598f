package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/MKhiriev/gig-sync/internal/adapter"
	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/internal/store"
	"github.com/MKhiriev/gig-sync/internal/utils"
	"github.com/MKhiriev/gig-sync/models"
)

const (
	defaultPullLimit    = 100
	defaultMaxPullPages = 10
)

// ownershipScopes lists, per table, the predicates under which a document
// belongs to a user. Each scope is pulled with its own query.
func ownershipScopes(table models.TableName, userID string) [][]models.Filter {
	eq := func(field string) []models.Filter {
		return []models.Filter{{Field: field, Op: models.OpEqual, Value: userID}}
	}
	participant := []models.Filter{{Field: "participantIds", Op: models.OpArrayContains, Value: userID}}

	switch table {
	case models.TableEvents:
		return [][]models.Filter{eq("organizerId")}
	case models.TableOffers:
		return [][]models.Filter{eq("organizerId"), eq("providerId")}
	case models.TableArtists:
		return [][]models.Filter{eq("providerId")}
	case models.TableConversations, models.TableMessages:
		return [][]models.Filter{participant}
	}
	return nil
}

type mergeOutcome int

const (
	mergeSkipped mergeOutcome = iota
	mergeCreated
	mergeApplied
	mergeDeleted
)

// ReconcilerConfig bounds a pull.
type ReconcilerConfig struct {
	PullLimit    int
	MaxPullPages int
}

type reconciler struct {
	db         store.Transactor
	records    store.RecordRepository
	watermarks store.WatermarkRepository
	remote     adapter.RemoteStore
	codecs     Codecs
	ids        utils.IDGenerator
	clock      clock.Clock
	cfg        ReconcilerConfig
	logger     *logger.Logger
}

func NewReconciler(storages *store.ClientStorages, remote adapter.RemoteStore, codecs Codecs, ids utils.IDGenerator, clk clock.Clock, cfg ReconcilerConfig, logger *logger.Logger) Reconciler {
	if cfg.PullLimit <= 0 {
		cfg.PullLimit = defaultPullLimit
	}
	if cfg.MaxPullPages <= 0 {
		cfg.MaxPullPages = defaultMaxPullPages
	}
	return &reconciler{
		db:         storages.DB,
		records:    storages.RecordRepository,
		watermarks: storages.WatermarkRepository,
		remote:     remote,
		codecs:     codecs,
		ids:        ids,
		clock:      clk,
		cfg:        cfg,
		logger:     logger,
	}
}

func (r *reconciler) Pull(ctx context.Context, req models.PullRequest) (models.PullResult, error) {
	result := models.PullResult{Table: req.Table}

	if req.UserID == "" {
		return result, ErrNoUserID
	}
	if _, err := r.codecs.Get(req.Table); err != nil {
		return result, err
	}

	since := req.Since
	if since == nil {
		stored, err := r.watermarks.Get(ctx, req.Table, req.UserID)
		if err != nil {
			return result, err
		}
		since = stored
	}

	limit := req.Limit
	if limit <= 0 {
		limit = r.cfg.PullLimit
	}

	var newest *time.Time
	drained := true
	for _, scope := range ownershipScopes(req.Table, req.UserID) {
		scopeNewest, scopeDrained, err := r.pullScope(ctx, req.Table, scope, since, limit, &result)
		if err != nil {
			return result, err
		}
		drained = drained && scopeDrained
		newest = later(newest, scopeNewest)
	}

	result.Drained = drained
	result.Watermark = since
	// a window that was not drained may hide older changes below the page cap
	if drained && newest != nil && (since == nil || newest.After(*since)) {
		if err := r.watermarks.Advance(ctx, req.Table, req.UserID, *newest); err != nil {
			return result, err
		}
		result.Watermark = newest
	}

	r.logger.Debug().
		Str("table", req.Table.String()).
		Int("fetched", result.Fetched).
		Int("created", result.Created).
		Int("applied", result.Applied).
		Int("skipped", result.Skipped).
		Int("deleted", result.Deleted).
		Bool("drained", drained).
		Msg("pull finished")

	return result, nil
}

// pullScope pages one ownership scope newest first, down to since.
func (r *reconciler) pullScope(ctx context.Context, table models.TableName, scope []models.Filter, since *time.Time, limit int, result *models.PullResult) (*time.Time, bool, error) {
	var (
		newest *time.Time
		cursor *time.Time
	)

	for page := 0; page < r.cfg.MaxPullPages; page++ {
		filters := append([]models.Filter(nil), scope...)
		if since != nil {
			filters = append(filters, models.Filter{Field: models.FieldUpdatedAt, Op: models.OpGreater, Value: *since})
		}
		if cursor != nil {
			filters = append(filters, models.Filter{Field: models.FieldUpdatedAt, Op: models.OpLess, Value: *cursor})
		}

		docs, err := r.remote.Query(ctx, table, models.Query{
			Filters:    filters,
			OrderBy:    models.FieldUpdatedAt,
			Descending: true,
			Limit:      limit,
		})
		if err != nil {
			return nil, false, fmt.Errorf("query %s: %w", table, err)
		}
		result.Fetched += len(docs)

		err = r.db.WithinTx(ctx, func(ctx context.Context) error {
			for _, doc := range docs {
				outcome, err := r.merge(ctx, table, doc)
				if err != nil {
					return err
				}
				switch outcome {
				case mergeCreated:
					result.Created++
				case mergeApplied:
					result.Applied++
				case mergeDeleted:
					result.Deleted++
				default:
					result.Skipped++
				}
			}
			return nil
		})
		if err != nil {
			return nil, false, err
		}

		for _, doc := range docs {
			newest = later(newest, doc.UpdatedAt)
		}

		if len(docs) < limit {
			return newest, true, nil
		}

		oldest := docs[len(docs)-1].UpdatedAt
		if oldest == nil {
			return newest, false, nil
		}
		cursor = oldest
	}

	return newest, false, nil
}

// merge applies one remote document to the local store. Local changes that
// are not pushed yet always win.
func (r *reconciler) merge(ctx context.Context, table models.TableName, doc models.Document) (mergeOutcome, error) {
	local, found, err := r.findLocal(ctx, table, doc)
	if err != nil {
		return mergeSkipped, err
	}

	log := r.logger.With().Str("table", table.String()).Str("remote_id", doc.ID).Logger()
	now := r.clock.Now().UTC()

	if !found {
		if doc.Deleted {
			return mergeSkipped, nil
		}
		fields, err := r.codecs.Canonical(table, doc.Fields)
		if err != nil {
			log.Warn().Err(err).Msg("skipping invalid remote document")
			return mergeSkipped, nil
		}

		id := doc.ClientID
		if id == "" || local.ID != "" {
			id = r.ids.Generate()
		}
		remoteID := doc.ID
		err = r.records.Insert(ctx, models.LocalRecord{
			SyncMeta: models.SyncMeta{
				ID:            id,
				RemoteID:      &remoteID,
				UpdatedAt:     now,
				SyncedAt:      &now,
				RemoteVersion: utcPtr(doc.UpdatedAt),
			},
			Table: table,
			Data:  fields,
		})
		if err != nil {
			return mergeSkipped, err
		}
		return mergeCreated, nil
	}

	switch {
	case local.IsDirty, local.Deleted, doc.UpdatedAt == nil:
		return mergeSkipped, nil
	case !doc.UpdatedAt.After(baseline(local.SyncMeta)):
		return mergeSkipped, nil
	}

	if doc.Deleted {
		err = r.records.Delete(ctx, table, local.ID)
		if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
			return mergeSkipped, err
		}
		return mergeDeleted, nil
	}

	fields, err := r.codecs.Canonical(table, doc.Fields)
	if err != nil {
		log.Warn().Err(err).Str("local_id", local.ID).Msg("skipping invalid remote document")
		return mergeSkipped, nil
	}

	// updatedAt and syncedAt stay on the device clock
	applied := nextUpdatedAt(local.UpdatedAt, now)
	remoteID := doc.ID
	local.Data = fields
	local.RemoteID = &remoteID
	local.UpdatedAt = applied
	local.SyncedAt = &applied
	local.RemoteVersion = utcPtr(doc.UpdatedAt)
	local.IsDirty = false
	if err = r.records.Update(ctx, local); err != nil {
		return mergeSkipped, err
	}
	return mergeApplied, nil
}

// findLocal looks a document up by remote id, then by the client id it was
// created under. The second lookup catches a create whose response was lost.
// A client-id match that is bound to another remote id is returned with
// found=false so the caller does not reuse its id.
func (r *reconciler) findLocal(ctx context.Context, table models.TableName, doc models.Document) (models.LocalRecord, bool, error) {
	local, err := r.records.FindByRemoteID(ctx, table, doc.ID)
	if err == nil {
		return local, true, nil
	}
	if !errors.Is(err, store.ErrRecordNotFound) {
		return models.LocalRecord{}, false, err
	}
	if doc.ClientID == "" {
		return models.LocalRecord{}, false, nil
	}

	local, err = r.records.Get(ctx, table, doc.ClientID)
	if errors.Is(err, store.ErrRecordNotFound) {
		return models.LocalRecord{}, false, nil
	}
	if err != nil {
		return models.LocalRecord{}, false, err
	}
	if local.HasRemoteID() && *local.RemoteID != doc.ID {
		return local, false, nil
	}
	return local, true, nil
}

// baseline is the remote version a clean local copy reflects. Without a
// server version on record it falls back to the local updatedAt.
func baseline(meta models.SyncMeta) time.Time {
	if meta.RemoteVersion != nil {
		return *meta.RemoteVersion
	}
	return meta.UpdatedAt
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func later(a, b *time.Time) *time.Time {
	switch {
	case b == nil:
		return a
	case a == nil || b.After(*a):
		t := *b
		return &t
	}
	return a
}
