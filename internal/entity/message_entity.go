package entity

import "time"

type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
	MessageRoleSystem    MessageRole = "system"
)

func (r MessageRole) Valid() bool {
	switch r {
	case MessageRoleUser, MessageRoleAssistant, MessageRoleSystem:
		return true
	}
	return false
}

// Message is one persisted chat turn. Messages are append-only.
type Message struct {
	Id        int64
	Role      MessageRole
	Content   string
	Timestamp time.Time
	Metadata  map[string]interface{}
}
