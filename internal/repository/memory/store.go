package memory

import (
	"context"
	"sync"

	"alkulous-relay/internal/entity"
	"alkulous-relay/internal/repository/contract"
	"alkulous-relay/internal/repository/unitofwork"
)

// Store holds every table in process memory. It backs the application when
// no database is configured, and the service tests.
type Store struct {
	mu sync.RWMutex

	messages      []entity.Message
	nextMessageId int64

	apiKeys      []entity.ApiKey
	nextApiKeyId int64

	users map[string]entity.User
}

func NewStore() *Store {
	return &Store{
		users: make(map[string]entity.User),
	}
}

// NewRepositoryFactory returns a factory whose units of work all share s.
func (s *Store) NewRepositoryFactory() unitofwork.RepositoryFactory {
	return &repositoryFactory{store: s}
}

type repositoryFactory struct {
	store *Store
}

func (f *repositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{store: f.store}
}

// unitOfWork applies writes immediately; Begin/Commit/Rollback only mark
// boundaries and Rollback cannot undo anything.
type unitOfWork struct {
	store *Store
}

func (u *unitOfWork) Begin(ctx context.Context) error { return nil }
func (u *unitOfWork) Commit() error                   { return nil }
func (u *unitOfWork) Rollback() error                 { return nil }

func (u *unitOfWork) MessageRepository() contract.MessageRepository {
	return &MessageRepository{store: u.store}
}

func (u *unitOfWork) ApiKeyRepository() contract.ApiKeyRepository {
	return &ApiKeyRepository{store: u.store}
}

func (u *unitOfWork) UserRepository() contract.UserRepository {
	return &UserRepository{store: u.store}
}
