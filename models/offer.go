package models

import "encoding/json"

type OfferStatus string

const (
	OfferStatusPending  OfferStatus = "pending"
	OfferStatusAccepted OfferStatus = "accepted"
	OfferStatusDeclined OfferStatus = "declined"
)

// Offer is a provider's proposal for an event.
type Offer struct {
	SyncMeta `json:"-"`

	EventID     string      `json:"eventId"`
	OrganizerID string      `json:"organizerId"`
	ProviderID  string      `json:"providerId"`
	ArtistID    string      `json:"artistId,omitempty"`
	Price       float64     `json:"price"`
	Message     string      `json:"message,omitempty"`
	Status      OfferStatus `json:"status"`
}

func (o *Offer) TableName() TableName { return TableOffers }

func (o *Offer) Meta() *SyncMeta { return &o.SyncMeta }

func (o *Offer) Fields() (json.RawMessage, error) { return json.Marshal(o) }
