package unitofwork

import (
	"context"

	"alkulous-relay/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	MessageRepository() contract.MessageRepository
	ApiKeyRepository() contract.ApiKeyRepository
	UserRepository() contract.UserRepository
}
