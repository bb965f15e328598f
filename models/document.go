// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// FieldUpdatedAt is the reserved field name that refers to the
// server-assigned document update timestamp in filters and ordering.
const FieldUpdatedAt = "updatedAt"

// Document is a remote document as exchanged with the document store.
type Document struct {
	// ID is the server-assigned document id.
	ID string `json:"id"`

	// ClientID is the local record id that created the document. Inserts are
	// idempotent on (collection, ClientID).
	ClientID string `json:"clientId,omitempty"`

	// Fields is the document body.
	Fields json.RawMessage `json:"fields"`

	// UpdatedAt is assigned by the server on every write.
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`

	// Deleted marks a tombstone left by a remote delete.
	Deleted bool `json:"deleted,omitempty"`
}

// InsertRequest is the body of a document insert.
type InsertRequest struct {
	ClientID string          `json:"clientId,omitempty"`
	Fields   json.RawMessage `json:"fields"`
}

// InsertResponse is returned by a document insert.
type InsertResponse struct {
	ID        string    `json:"id"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpdateRequest is the body of a partial document update. Top-level keys of
// Fields replace the stored ones.
type UpdateRequest struct {
	Fields json.RawMessage `json:"fields"`
}
