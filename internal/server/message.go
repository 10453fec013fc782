package server

import (
	"encoding/json"
	"time"
)

// MessageType identifies the event carried by a Message
type MessageType string

const (
	MessageTypeTournamentStart    MessageType = "tournament_start"
	MessageTypeTurn               MessageType = "turn"
	MessageTypeMatchComplete      MessageType = "match_complete"
	MessageTypeTournamentComplete MessageType = "tournament_complete"
)

// Message is the envelope every event is broadcast in
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage encodes data into a message stamped with now
func NewMessage(messageType MessageType, data any, now time.Time) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: now,
	}, nil
}
