package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/gig-sync/internal/config"
	"github.com/MKhiriev/gig-sync/internal/logger"
	"github.com/MKhiriev/gig-sync/internal/utils"
	"github.com/MKhiriev/gig-sync/models"
)

const (
	documentsPath = "/api/documents/{collection}"
	documentPath  = "/api/documents/{collection}/{id}"
	queryPath     = "/api/documents/{collection}/query"
	pingPath      = "/api/ping"
)

type httpRemoteStore struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPRemoteStore constructs the HTTP/REST implementation of [RemoteStore].
// It normalises adapterCfg.HTTPAddress into a base URL and authenticates every
// request with appCfg.UserToken. Bodies are signed when appCfg.HashKey is set.
func NewHTTPRemoteStore(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (RemoteStore, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, appCfg.UserToken, adapterCfg.RequestTimeout)
	if appCfg.HashKey != "" {
		client.SignBodies(utils.NewHasher(appCfg.HashKey))
	}

	return &httpRemoteStore{
		client: client,
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Insert implements [RemoteStore] with POST /api/documents/{collection}.
func (h *httpRemoteStore) Insert(ctx context.Context, collection models.TableName, req models.InsertRequest) (models.InsertResponse, error) {
	var created models.InsertResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("collection", collection.String()).
		SetBody(req).
		Post(documentsPath)
	if err != nil {
		return models.InsertResponse{}, fmt.Errorf("%w: insert request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.InsertResponse{}, err
	}

	if err = json.Unmarshal(resp.Body(), &created); err == nil && created.ID == "" {
		err = errMissingID
	}
	if err != nil {
		h.logger.Error().
			Str("func", "httpRemoteStore.Insert").
			Str("collection", collection.String()).
			Int("status", resp.StatusCode()).
			Msg("malformed insert response")
		return models.InsertResponse{}, fmt.Errorf("%w: insert: %w", ErrDecodeResponse, err)
	}

	return created, nil
}

// Update implements [RemoteStore] with PATCH /api/documents/{collection}/{id}.
func (h *httpRemoteStore) Update(ctx context.Context, collection models.TableName, id string, fields json.RawMessage) (models.Document, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"collection": collection.String(), "id": id}).
		SetBody(models.UpdateRequest{Fields: fields}).
		Patch(documentPath)
	if err != nil {
		return models.Document{}, fmt.Errorf("%w: update request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Document{}, err
	}

	updated := models.Document{ID: id}
	if len(bytes.TrimSpace(resp.Body())) == 0 {
		return updated, nil
	}
	if err = json.Unmarshal(resp.Body(), &updated); err != nil {
		h.logger.Error().
			Str("func", "httpRemoteStore.Update").
			Str("collection", collection.String()).
			Str("id", id).
			Int("status", resp.StatusCode()).
			Msg("malformed update response")
		return models.Document{}, fmt.Errorf("%w: update: %w", ErrDecodeResponse, err)
	}

	return updated, nil
}

// Delete implements [RemoteStore] with DELETE /api/documents/{collection}/{id}.
func (h *httpRemoteStore) Delete(ctx context.Context, collection models.TableName, id string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"collection": collection.String(), "id": id}).
		Delete(documentPath)
	if err != nil {
		return fmt.Errorf("%w: delete request: %w", ErrTransport, err)
	}

	return mapHTTPError(resp)
}

// Query implements [RemoteStore] with POST /api/documents/{collection}/query.
func (h *httpRemoteStore) Query(ctx context.Context, collection models.TableName, q models.Query) ([]models.Document, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("collection", collection.String()).
		SetBody(q).
		Post(queryPath)
	if err != nil {
		return nil, fmt.Errorf("%w: query request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var docs []models.Document
	if err = json.Unmarshal(resp.Body(), &docs); err != nil {
		return nil, fmt.Errorf("%w: query: %w", ErrDecodeResponse, err)
	}

	return docs, nil
}
