package models

import (
	"encoding/json"
	"time"
)

// Conversation is a chat thread between an organizer and a provider.
type Conversation struct {
	SyncMeta `json:"-"`

	ParticipantIDs []string   `json:"participantIds"`
	EventID        string     `json:"eventId,omitempty"`
	LastMessage    string     `json:"lastMessage,omitempty"`
	LastMessageAt  *time.Time `json:"lastMessageAt,omitempty"`
}

func (c *Conversation) TableName() TableName { return TableConversations }

func (c *Conversation) Meta() *SyncMeta { return &c.SyncMeta }

func (c *Conversation) Fields() (json.RawMessage, error) { return json.Marshal(c) }
