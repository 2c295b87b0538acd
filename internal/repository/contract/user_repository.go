package contract

import (
	"context"

	"alkulous-relay/internal/entity"
)

type UserRepository interface {
	Upsert(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
}
