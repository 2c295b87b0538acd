package memory

import (
	"context"
	"time"

	"alkulous-relay/internal/entity"
)

type UserRepository struct {
	store *Store
}

func (r *UserRepository) Upsert(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now()
	if existing, ok := r.store.users[user.Id]; ok {
		user.CreatedAt = existing.CreatedAt
	} else {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	r.store.users[user.Id] = *user
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if u, ok := r.store.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}
