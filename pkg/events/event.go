package events

import (
	"encoding/json"
	"time"
)

const (
	TypeChatExchanged  = "CHAT_EXCHANGED"
	TypeHistoryCleared = "HISTORY_CLEARED"
	TypeApiKeyCreated  = "API_KEY_CREATED"
	TypeApiKeyRevoked  = "API_KEY_REVOKED"
)

// Event is anything the relay announces on the event bus.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Marshal encodes any Event in the BaseEvent envelope.
func Marshal(e Event) ([]byte, error) {
	return json.Marshal(BaseEvent{Type: e.EventType(), Data: e.Payload(), OccurredAt: e.Timestamp()})
}

func Unmarshal(data []byte) (BaseEvent, error) {
	var e BaseEvent
	err := json.Unmarshal(data, &e)
	return e, err
}
