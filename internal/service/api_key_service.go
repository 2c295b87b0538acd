package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"alkulous-relay/internal/dto"
	"alkulous-relay/internal/entity"
	"alkulous-relay/internal/pkg/logger"
	"alkulous-relay/internal/repository/contract"
	"alkulous-relay/internal/repository/unitofwork"
	"alkulous-relay/pkg/events"
)

const (
	apiKeyPrefix        = "ak_"
	apiKeyRandomLength  = 26
	apiKeyAlphabet      = "0123456789abcdefghijklmnopqrstuvwxyz"
	apiKeyCreateRetries = 3
)

type IApiKeyService interface {
	Create(ctx context.Context, request *dto.CreateApiKeyRequest) (*dto.ApiKeyResponse, error)
	List(ctx context.Context) ([]*dto.ApiKeyResponse, error)
	Delete(ctx context.Context, id int64) error
	// FindByToken returns nil, nil when the token is unknown.
	FindByToken(ctx context.Context, token string) (*entity.ApiKey, error)
}

type apiKeyService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  IPublisherService
	logger     logger.ILogger
	generate   func() (string, error)
}

func NewApiKeyService(uowFactory unitofwork.RepositoryFactory, publisher IPublisherService, log logger.ILogger) IApiKeyService {
	return &apiKeyService{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     log,
		generate:   GenerateApiKey,
	}
}

// GenerateApiKey returns "ak_" followed by 26 base-36 characters drawn from
// crypto/rand.
func GenerateApiKey() (string, error) {
	buf := make([]byte, apiKeyRandomLength)
	max := big.NewInt(int64(len(apiKeyAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		buf[i] = apiKeyAlphabet[n.Int64()]
	}
	return apiKeyPrefix + string(buf), nil
}

func (s *apiKeyService) Create(ctx context.Context, request *dto.CreateApiKeyRequest) (*dto.ApiKeyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var key *entity.ApiKey
	for attempt := 1; attempt <= apiKeyCreateRetries; attempt++ {
		token, err := s.generate()
		if err != nil {
			return nil, err
		}

		candidate := &entity.ApiKey{Key: token, Name: request.Name}
		err = uow.ApiKeyRepository().Create(ctx, candidate)
		if err == nil {
			key = candidate
			break
		}
		if !errors.Is(err, contract.ErrDuplicateKey) {
			return nil, fmt.Errorf("create api key: %w", err)
		}
		s.logger.Warn("ApiKeyService", "Generated api key collided, regenerating", map[string]interface{}{"attempt": attempt})
	}
	if key == nil {
		return nil, fmt.Errorf("create api key: %w after %d attempts", contract.ErrDuplicateKey, apiKeyCreateRetries)
	}

	s.logger.Info("ApiKeyService", "API key created", map[string]interface{}{"id": key.Id, "name": key.Name})
	publishQuietly(ctx, s.publisher, s.logger, "ApiKeyService", events.New(events.TypeApiKeyCreated, map[string]interface{}{
		"id":   key.Id,
		"name": key.Name,
	}))

	return toApiKeyResponse(key), nil
}

func (s *apiKeyService) List(ctx context.Context) ([]*dto.ApiKeyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	keys, err := uow.ApiKeyRepository().FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list api keys: %w", err)
	}

	res := make([]*dto.ApiKeyResponse, 0, len(keys))
	for _, k := range keys {
		res = append(res, toApiKeyResponse(k))
	}
	return res, nil
}

// Delete is idempotent: an unknown id succeeds without an event.
func (s *apiKeyService) Delete(ctx context.Context, id int64) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.ApiKeyRepository()

	existing, err := repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find api key: %w", err)
	}
	if existing == nil {
		return nil
	}

	if err := repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete api key: %w", err)
	}

	s.logger.Info("ApiKeyService", "API key revoked", map[string]interface{}{"id": id, "name": existing.Name})
	publishQuietly(ctx, s.publisher, s.logger, "ApiKeyService", events.New(events.TypeApiKeyRevoked, map[string]interface{}{
		"id":   id,
		"name": existing.Name,
	}))
	return nil
}

func (s *apiKeyService) FindByToken(ctx context.Context, token string) (*entity.ApiKey, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	key, err := uow.ApiKeyRepository().FindByKey(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("find api key: %w", err)
	}
	return key, nil
}

func toApiKeyResponse(k *entity.ApiKey) *dto.ApiKeyResponse {
	return &dto.ApiKeyResponse{
		Id:        k.Id,
		Key:       k.Key,
		Name:      k.Name,
		CreatedAt: k.CreatedAt,
	}
}
