package contract

import (
	"context"

	"alkulous-relay/internal/entity"
)

type ApiKeyRepository interface {
	// Create returns ErrDuplicateKey when the token already exists.
	Create(ctx context.Context, key *entity.ApiKey) error
	FindAll(ctx context.Context) ([]*entity.ApiKey, error)
	// FindByKey returns nil, nil when no key matches.
	FindByKey(ctx context.Context, key string) (*entity.ApiKey, error)
	FindByID(ctx context.Context, id int64) (*entity.ApiKey, error)
	Delete(ctx context.Context, id int64) error
}
