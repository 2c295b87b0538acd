package memory

import (
	"context"
	"time"

	"alkulous-relay/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SessionRepository is the fallback session store used when Redis is not
// reachable. Sessions are lost on restart.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Expired items are purged every 10 minutes.
	c := cache.New(7*24*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(ctx context.Context, session *entity.Session, ttl time.Duration) error {
	stored := *session
	r.cache.Set(session.Id.String(), &stored, ttl)
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	if x, found := r.cache.Get(id.String()); found {
		s := *x.(*entity.Session)
		return &s, nil
	}
	return nil, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.cache.Delete(id.String())
	return nil
}
