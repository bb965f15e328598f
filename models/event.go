package models

import (
	"encoding/json"
	"time"
)

// EventStatus is the publication state of an event. Events are never
// hard-deleted; EventStatusDeleted is their soft-delete marker.
type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
	EventStatusClosed    EventStatus = "closed"
	EventStatusDeleted   EventStatus = "deleted"
)

// Event is an organizer's event looking for service providers.
type Event struct {
	SyncMeta `json:"-"`

	OrganizerID string      `json:"organizerId"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Category    string      `json:"category,omitempty"`
	Location    string      `json:"location,omitempty"`
	StartsAt    *time.Time  `json:"startsAt,omitempty"`
	Budget      float64     `json:"budget,omitempty"`
	Status      EventStatus `json:"status"`
}

func (e *Event) TableName() TableName { return TableEvents }

func (e *Event) Meta() *SyncMeta { return &e.SyncMeta }

func (e *Event) Fields() (json.RawMessage, error) { return json.Marshal(e) }
