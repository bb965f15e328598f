package models

import (
	"encoding/json"
	"time"
)

// Message is a single chat message. ParticipantIDs is denormalised from the
// conversation so that pulls can select a user's messages directly.
type Message struct {
	SyncMeta `json:"-"`

	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	ParticipantIDs []string  `json:"participantIds"`
	Text           string    `json:"text"`
	SentAt         time.Time `json:"sentAt"`
	Read           bool      `json:"read,omitempty"`
}

func (m *Message) TableName() TableName { return TableMessages }

func (m *Message) Meta() *SyncMeta { return &m.SyncMeta }

func (m *Message) Fields() (json.RawMessage, error) { return json.Marshal(m) }
