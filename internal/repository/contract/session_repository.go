package contract

import (
	"context"
	"time"

	"alkulous-relay/internal/entity"

	"github.com/google/uuid"
)

type SessionRepository interface {
	Save(ctx context.Context, session *entity.Session, ttl time.Duration) error
	// Get returns nil, nil for unknown or expired sessions.
	Get(ctx context.Context, id uuid.UUID) (*entity.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
