package service

import (
	"context"
	"fmt"

	"alkulous-relay/internal/constant"
	"alkulous-relay/internal/dto"
	"alkulous-relay/internal/entity"
	"alkulous-relay/internal/pkg/logger"
	"alkulous-relay/internal/repository/unitofwork"
	"alkulous-relay/pkg/events"
	"alkulous-relay/pkg/llm"
	"alkulous-relay/pkg/llm/backend"
)

// IPublicChatService serves traffic that does not come from a logged-in
// operator: API-key callers and the identity endpoint. Both always talk to
// Ollama.
type IPublicChatService interface {
	// Authenticate resolves the x-api-key header value.
	Authenticate(ctx context.Context, token string) (*entity.ApiKey, error)
	SendChat(ctx context.Context, key *entity.ApiKey, request *dto.PublicChatRequest) (*dto.ChatResponse, error)
	Identity(ctx context.Context, request *dto.IdentityRequest) (*dto.IdentityResponse, error)
}

type publicChatService struct {
	uowFactory unitofwork.RepositoryFactory
	apiKeys    IApiKeyService
	selector   *backend.Selector
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewPublicChatService(
	uowFactory unitofwork.RepositoryFactory,
	apiKeys IApiKeyService,
	selector *backend.Selector,
	publisher IPublisherService,
	log logger.ILogger,
) IPublicChatService {
	return &publicChatService{
		uowFactory: uowFactory,
		apiKeys:    apiKeys,
		selector:   selector,
		publisher:  publisher,
		logger:     log,
	}
}

func (s *publicChatService) Authenticate(ctx context.Context, token string) (*entity.ApiKey, error) {
	if token == "" {
		return nil, ErrMissingApiKey
	}

	key, err := s.apiKeys.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if key == nil {
		return nil, ErrInvalidApiKey
	}
	return key, nil
}

// SendChat reads context before writing anything and persists the exchange
// only after the model answered.
func (s *publicChatService) SendChat(ctx context.Context, key *entity.ApiKey, request *dto.PublicChatRequest) (*dto.ChatResponse, error) {
	ctx = context.WithoutCancel(ctx)
	uow := s.uowFactory.NewUnitOfWork(ctx)

	recent, err := uow.MessageRepository().FindRecent(ctx, constant.PublicHistoryWindow)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	b, ok := s.selector.Public()
	if !ok {
		return nil, ErrBackendUnconfigured
	}

	messages := buildPrompt(constant.PublicSystemPrompt, recent, request.Message)
	content, err := b.Provider.Chat(ctx, messages)
	if err != nil {
		s.logger.Error("PublicChatService", "Public API chat failed", map[string]interface{}{
			"api_key": key.Name,
			"model":   b.Model,
			"error":   err,
		})
		return nil, &BackendError{Err: err}
	}
	if content == "" {
		content = constant.PublicFallbackReply
	}

	userContent := fmt.Sprintf(constant.PublicApiTagFormat, key.Name, request.Message)
	if err := s.persistExchange(ctx, uow, userContent, content, map[string]interface{}{"api_key": key.Name}); err != nil {
		return nil, err
	}

	publishQuietly(ctx, s.publisher, s.logger, "PublicChatService", events.New(events.TypeChatExchanged, map[string]interface{}{
		"channel":   "public",
		"api_key":   key.Name,
		"user":      userContent,
		"assistant": content,
	}))

	return &dto.ChatResponse{Response: content}, nil
}

func (s *publicChatService) Identity(ctx context.Context, request *dto.IdentityRequest) (*dto.IdentityResponse, error) {
	ctx = context.WithoutCancel(ctx)
	b, ok := s.selector.Public()
	if !ok {
		return nil, ErrBackendUnconfigured
	}

	messages := []llm.Message{
		{Role: string(entity.MessageRoleSystem), Content: constant.IdentitySystemPrompt},
		{Role: string(entity.MessageRoleUser), Content: request.Prompt},
	}
	reply, err := b.Provider.Chat(ctx, messages)
	if err != nil {
		s.logger.Error("PublicChatService", "Identity endpoint call failed", map[string]interface{}{
			"model": b.Model,
			"error": err,
		})
		return nil, &BackendError{Err: err}
	}
	if reply == "" {
		reply = constant.IdentityFallbackReply
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	userContent := fmt.Sprintf(constant.IdentityApiTagFormat, request.Prompt)
	if err := s.persistExchange(ctx, uow, userContent, reply, map[string]interface{}{"channel": "identity"}); err != nil {
		return nil, err
	}

	publishQuietly(ctx, s.publisher, s.logger, "PublicChatService", events.New(events.TypeChatExchanged, map[string]interface{}{
		"channel":   "identity",
		"user":      userContent,
		"assistant": reply,
	}))

	return &dto.IdentityResponse{System: constant.SystemName, Reply: reply}, nil
}

func (s *publicChatService) persistExchange(ctx context.Context, uow unitofwork.UnitOfWork, userContent, reply string, metadata map[string]interface{}) error {
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer uow.Rollback()

	repo := uow.MessageRepository()
	if err := repo.Create(ctx, &entity.Message{Role: entity.MessageRoleUser, Content: userContent, Metadata: metadata}); err != nil {
		return fmt.Errorf("save user message: %w", err)
	}
	if err := repo.Create(ctx, &entity.Message{Role: entity.MessageRoleAssistant, Content: reply, Metadata: metadata}); err != nil {
		return fmt.Errorf("save assistant message: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("commit exchange: %w", err)
	}
	return nil
}
