// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client's transport to the remote document
// store.
//
// [RemoteStore] decouples the sync services from the protocol; the package
// ships an HTTP/REST implementation ([NewHTTPRemoteStore]). [ConnectivityProbe]
// answers whether a usable network path to the server exists, over HTTP or
// the gRPC health service.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so callers can use [errors.Is] for transport-agnostic handling.
// [IsPermanent] tells a failure that will never succeed on retry from a
// transient one.
package adapter

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/gig-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// RemoteStore is the remote document store API. Collections are named after
// the synced tables.
type RemoteStore interface {
	// Insert creates a document and returns its server-assigned id. A
	// repeated insert with the same ClientID returns the original document.
	Insert(ctx context.Context, collection models.TableName, req models.InsertRequest) (models.InsertResponse, error)

	// Update merges the top-level keys of fields into the document id and
	// returns the stored document. UpdatedAt is nil when the server answered
	// without a body.
	Update(ctx context.Context, collection models.TableName, id string, fields json.RawMessage) (models.Document, error)

	// Delete removes the document id. The server keeps a tombstone.
	Delete(ctx context.Context, collection models.TableName, id string) error

	// Query returns documents matching q, tombstones included.
	Query(ctx context.Context, collection models.TableName, q models.Query) ([]models.Document, error)
}

// ConnectivityProbe reports whether the remote store is reachable.
type ConnectivityProbe interface {
	IsOnline(ctx context.Context) bool
}
