// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// SyncMeta is the synchronization bookkeeping every locally cached entity
// carries.
//
// Invariant: IsDirty is true whenever UpdatedAt is after SyncedAt or SyncedAt
// is nil.
type SyncMeta struct {
	// ID is the local store identity (UUID), assigned on local creation or
	// when a pulled document is first materialised.
	ID string

	// RemoteID is nil until the first successful push, or set by a pull.
	RemoteID *string

	// UpdatedAt is the monotonic local timestamp of the latest local
	// mutation or applied remote version.
	UpdatedAt time.Time

	// SyncedAt is the timestamp of the last confirmed reconciliation.
	SyncedAt *time.Time

	// RemoteVersion is the server-assigned updatedAt of the remote version
	// the local copy last matched. It is on the server clock and is only
	// compared with other server timestamps.
	RemoteVersion *time.Time

	// IsDirty marks local changes that are not confirmed synced yet.
	IsDirty bool

	// Deleted marks a local tombstone kept until a remote Delete completes.
	Deleted bool
}

// HasRemoteID reports whether the record has a confirmed remote copy.
func (m SyncMeta) HasRemoteID() bool {
	return m.RemoteID != nil && *m.RemoteID != ""
}

// Record is a typed synced entity. Implementations embed SyncMeta with a
// `json:"-"` tag so that json.Marshal of the record yields exactly the remote
// document fields.
type Record interface {
	TableName() TableName
	Meta() *SyncMeta
	// Fields serialises the domain fields into the remote document shape.
	Fields() (json.RawMessage, error)
}

// LocalRecord is the untyped row shape shared by every synced table.
type LocalRecord struct {
	SyncMeta
	Table TableName
	Data  json.RawMessage
}

// Snapshot is the payload stored on a queue entry: the remote-shaped document
// plus the record's UpdatedAt at enqueue time, which lets the processor detect
// local edits made during a push round-trip.
type Snapshot struct {
	UpdatedAt time.Time       `json:"updatedAt"`
	Fields    json.RawMessage `json:"fields"`
}

// EncodeSnapshot encodes s as a queue payload.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	return json.Marshal(s)
}

// DecodeSnapshot decodes a queue payload.
func DecodeSnapshot(payload []byte) (Snapshot, error) {
	var s Snapshot
	err := json.Unmarshal(payload, &s)
	return s, err
}

// RecordQuery selects local records of one table.
type RecordQuery struct {
	Filters        []Filter
	OrderBy        string
	Descending     bool
	Limit          int
	IncludeDeleted bool
}
