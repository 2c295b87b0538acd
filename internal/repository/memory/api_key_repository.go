package memory

import (
	"context"
	"time"

	"alkulous-relay/internal/entity"
	"alkulous-relay/internal/repository/contract"
)

type ApiKeyRepository struct {
	store *Store
}

func (r *ApiKeyRepository) Create(ctx context.Context, key *entity.ApiKey) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.apiKeys {
		if existing.Key == key.Key {
			return contract.ErrDuplicateKey
		}
	}

	r.store.nextApiKeyId++
	key.Id = r.store.nextApiKeyId
	if key.CreatedAt.IsZero() {
		key.CreatedAt = time.Now()
	}
	r.store.apiKeys = append(r.store.apiKeys, *key)
	return nil
}

// FindAll returns keys newest first; ids are monotonic so reverse insertion
// order is id order.
func (r *ApiKeyRepository) FindAll(ctx context.Context) ([]*entity.ApiKey, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*entity.ApiKey, 0, len(r.store.apiKeys))
	for i := len(r.store.apiKeys) - 1; i >= 0; i-- {
		k := r.store.apiKeys[i]
		result = append(result, &k)
	}
	return result, nil
}

func (r *ApiKeyRepository) FindByKey(ctx context.Context, key string) (*entity.ApiKey, error) {
	return r.find(func(k entity.ApiKey) bool { return k.Key == key }), nil
}

func (r *ApiKeyRepository) FindByID(ctx context.Context, id int64) (*entity.ApiKey, error) {
	return r.find(func(k entity.ApiKey) bool { return k.Id == id }), nil
}

func (r *ApiKeyRepository) Delete(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, k := range r.store.apiKeys {
		if k.Id == id {
			r.store.apiKeys = append(r.store.apiKeys[:i], r.store.apiKeys[i+1:]...)
			break
		}
	}
	return nil
}

func (r *ApiKeyRepository) find(match func(entity.ApiKey) bool) *entity.ApiKey {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, k := range r.store.apiKeys {
		if match(k) {
			found := k
			return &found
		}
	}
	return nil
}
