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

type IChatService interface {
	SendChat(ctx context.Context, principalId string, request *dto.SendChatRequest) (*dto.ChatResponse, error)
	GetHistory(ctx context.Context, limit int) ([]*dto.MessageResponse, error)
	ClearHistory(ctx context.Context) error
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	selector   *backend.Selector
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	selector *backend.Selector,
	publisher IPublisherService,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory: uowFactory,
		selector:   selector,
		publisher:  publisher,
		logger:     log,
	}
}

// SendChat relays one operator turn. Backend failures are folded into the
// reply text; only store failures are returned as errors.
func (s *chatService) SendChat(ctx context.Context, principalId string, request *dto.SendChatRequest) (*dto.ChatResponse, error) {
	// A relay runs to completion even if the caller goes away.
	ctx = context.WithoutCancel(ctx)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.MessageRepository()

	userTurn := &entity.Message{
		Role:     entity.MessageRoleUser,
		Content:  request.Message,
		Metadata: map[string]interface{}{"principal_id": principalId},
	}
	if err := repo.Create(ctx, userTurn); err != nil {
		return nil, fmt.Errorf("save user message: %w", err)
	}

	// The window is read after the write, so it already holds userTurn;
	// it is appended once more below.
	recent, err := repo.FindRecent(ctx, constant.InternalHistoryWindow)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	messages := buildPrompt(constant.InternalSystemPrompt, recent, request.Message)

	if request.UseOllama {
		s.logger.Debug("ChatService", "useOllama flag received; selection unaffected", nil)
	}
	b := s.selector.Select(request.UseLocalBrain, request.UseOllama)

	reply, callErr := b.Reply(ctx, messages)
	if callErr != nil {
		s.logger.Error("ChatService", "Backend call failed", map[string]interface{}{
			"backend": string(b.Kind),
			"model":   b.Model,
			"error":   callErr,
		})
	}

	assistantTurn := &entity.Message{
		Role:    entity.MessageRoleAssistant,
		Content: reply,
		Metadata: map[string]interface{}{
			"backend": string(b.Kind),
			"model":   b.Model,
		},
	}
	if err := repo.Create(ctx, assistantTurn); err != nil {
		return nil, fmt.Errorf("save assistant message: %w", err)
	}

	publishQuietly(ctx, s.publisher, s.logger, "ChatService", events.New(events.TypeChatExchanged, map[string]interface{}{
		"channel":   "internal",
		"backend":   string(b.Kind),
		"user":      toMessageResponse(userTurn),
		"assistant": toMessageResponse(assistantTurn),
	}))

	return &dto.ChatResponse{Response: reply}, nil
}

// GetHistory returns stored turns newest first. limit is clamped to
// [1, HistoryMaxLimit]; zero or negative means the default.
func (s *chatService) GetHistory(ctx context.Context, limit int) ([]*dto.MessageResponse, error) {
	if limit <= 0 {
		limit = constant.HistoryDefaultLimit
	}
	if limit > constant.HistoryMaxLimit {
		limit = constant.HistoryMaxLimit
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.MessageRepository().FindRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	res := make([]*dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		res = append(res, toMessageResponse(m))
	}
	return res, nil
}

func (s *chatService) ClearHistory(ctx context.Context) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.MessageRepository().DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}

	s.logger.Info("ChatService", "History cleared", nil)
	publishQuietly(ctx, s.publisher, s.logger, "ChatService", events.New(events.TypeHistoryCleared, nil))
	return nil
}

// buildPrompt produces [system, recent oldest-first..., user].
func buildPrompt(systemPrompt string, newestFirst []*entity.Message, userMessage string) []llm.Message {
	messages := make([]llm.Message, 0, len(newestFirst)+2)
	messages = append(messages, llm.Message{Role: string(entity.MessageRoleSystem), Content: systemPrompt})
	for i := len(newestFirst) - 1; i >= 0; i-- {
		messages = append(messages, llm.Message{Role: string(newestFirst[i].Role), Content: newestFirst[i].Content})
	}
	return append(messages, llm.Message{Role: string(entity.MessageRoleUser), Content: userMessage})
}

func toMessageResponse(m *entity.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		Id:        m.Id,
		Role:      string(m.Role),
		Content:   m.Content,
		Timestamp: m.Timestamp,
		Metadata:  m.Metadata,
	}
}
