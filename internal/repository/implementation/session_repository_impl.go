package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"alkulous-relay/internal/entity"
	"alkulous-relay/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "sess:"

// RedisSessionRepository keeps sessions in Redis so they survive restarts and
// are shared between instances.
type RedisSessionRepository struct {
	rdb *redis.Client
}

func NewRedisSessionRepository(rdb *redis.Client) contract.SessionRepository {
	return &RedisSessionRepository{rdb: rdb}
}

func (r *RedisSessionRepository) Save(ctx context.Context, session *entity.Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return r.rdb.Set(ctx, sessionKeyPrefix+session.Id.String(), payload, ttl).Err()
}

func (r *RedisSessionRepository) Get(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	raw, err := r.rdb.Get(ctx, sessionKeyPrefix+id.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var session entity.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

func (r *RedisSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.rdb.Del(ctx, sessionKeyPrefix+id.String()).Err()
}
