package models

import "encoding/json"

// Artist is a service provider's public profile.
type Artist struct {
	SyncMeta `json:"-"`

	ProviderID string   `json:"providerId"`
	Name       string   `json:"name"`
	Genres     []string `json:"genres,omitempty"`
	Bio        string   `json:"bio,omitempty"`
	City       string   `json:"city,omitempty"`
	HourlyRate float64  `json:"hourlyRate,omitempty"`
}

func (a *Artist) TableName() TableName { return TableArtists }

func (a *Artist) Meta() *SyncMeta { return &a.SyncMeta }

func (a *Artist) Fields() (json.RawMessage, error) { return json.Marshal(a) }
