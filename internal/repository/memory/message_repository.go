package memory

import (
	"context"
	"sort"
	"time"

	"alkulous-relay/internal/entity"
)

type MessageRepository struct {
	store *Store
}

// Create and FindRecent fail on a cancelled context, as the SQL store does.
func (r *MessageRepository) Create(ctx context.Context, message *entity.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextMessageId++
	message.Id = r.store.nextMessageId
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now()
	}
	r.store.messages = append(r.store.messages, *message)
	return nil
}

func (r *MessageRepository) FindRecent(ctx context.Context, limit int) ([]*entity.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return []*entity.Message{}, nil
	}

	r.store.mu.RLock()
	sorted := make([]entity.Message, len(r.store.messages))
	copy(sorted, r.store.messages)
	r.store.mu.RUnlock()

	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Timestamp.Equal(sorted[j].Timestamp) {
			return sorted[i].Timestamp.After(sorted[j].Timestamp)
		}
		return sorted[i].Id > sorted[j].Id
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	result := make([]*entity.Message, len(sorted))
	for i := range sorted {
		m := sorted[i]
		result[i] = &m
	}
	return result, nil
}

func (r *MessageRepository) DeleteAll(ctx context.Context) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.messages = nil
	return nil
}

func (r *MessageRepository) Count(ctx context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return int64(len(r.store.messages)), nil
}
