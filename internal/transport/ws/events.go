package ws

import (
	"encoding/json"
	"time"

	"github.com/flockrhq/flockr/internal/domain"
)

// Event types - Client → Server
const (
	EventTypeChannelSubscribe   = "channel.subscribe"
	EventTypeChannelUnsubscribe = "channel.unsubscribe"
	EventTypePing               = "ping"
)

// Event types - Server → Client
const (
	EventTypeMessageNew     = "message.new"
	EventTypeMessageEdited  = "message.edited"
	EventTypeMessageRemoved = "message.removed"
	EventTypeStandupStarted = "standup.started"
	EventTypeStandupFlushed = "standup.flushed"
	EventTypePong           = "pong"
	EventTypeError          = "error"
)

// Event is the base envelope for all WebSocket messages.
type Event struct {
	Type      string          `json:"type"`
	ChannelID *int64          `json:"channel_id,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"ts,omitempty"`
}

// --- Client → Server payloads ---

type ChannelPayload struct {
	ChannelID int64 `json:"channel_id"`
}

// --- Server → Client payloads ---

type MessagePayload struct {
	domain.Message
}

type MessageRemovedPayload struct {
	ID int64 `json:"message_id"`
}

type StandupStartedPayload struct {
	TimeFinish int64 `json:"time_finish"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewEvent creates a server→client event with the current timestamp.
func NewEvent(eventType string, channelID *int64, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:      eventType,
		ChannelID: channelID,
		Payload:   data,
		Timestamp: time.Now().Unix(),
	}, nil
}
