package contract

import (
	"context"

	"alkulous-relay/internal/entity"
)

// MessageRepository is an append-only log of chat turns.
type MessageRepository interface {
	// Create assigns Id and, when zero, Timestamp.
	Create(ctx context.Context, message *entity.Message) error
	// FindRecent returns at most limit messages, newest first.
	FindRecent(ctx context.Context, limit int) ([]*entity.Message, error)
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}
