package service

import (
	"context"
	"errors"

	"alkulous-relay/internal/dto"
	"alkulous-relay/internal/pkg/logger"
	"alkulous-relay/pkg/llm/ollama"
)

type IOllamaService interface {
	Status(ctx context.Context) *dto.OllamaStatusResponse
	Models(ctx context.Context) *dto.OllamaModelsResponse
}

// ModelLister is satisfied by *ollama.Client.
type ModelLister interface {
	ListModels(ctx context.Context) ([]ollama.ModelInfo, error)
}

type ollamaService struct {
	client       ModelLister
	currentModel string
	logger       logger.ILogger
}

// NewOllamaService accepts a nil client when OLLAMA_BASE_URL is unset.
func NewOllamaService(client ModelLister, currentModel string, log logger.ILogger) IOllamaService {
	return &ollamaService{
		client:       client,
		currentModel: currentModel,
		logger:       log,
	}
}

func (s *ollamaService) Status(ctx context.Context) *dto.OllamaStatusResponse {
	if s.client == nil {
		return &dto.OllamaStatusResponse{Available: false, Configured: false, Message: "OLLAMA_BASE_URL not configured"}
	}

	models, err := s.client.ListModels(ctx)
	if err != nil {
		s.logger.Warn("OllamaService", "Status probe failed", map[string]interface{}{"error": err.Error()})
		var statusErr *ollama.StatusError
		if errors.As(err, &statusErr) {
			return &dto.OllamaStatusResponse{Available: false, Configured: true, Message: "Ollama server not responding"}
		}
		return &dto.OllamaStatusResponse{
			Available:  false,
			Configured: true,
			Message:    "Could not connect to Ollama server. Make sure Ollama is running.",
		}
	}

	names := make([]string, 0, len(models))
	for _, m := range models {
		names = append(names, m.Name)
	}
	return &dto.OllamaStatusResponse{
		Available:    true,
		Configured:   true,
		CurrentModel: s.currentModel,
		Models:       names,
	}
}

func (s *ollamaService) Models(ctx context.Context) *dto.OllamaModelsResponse {
	empty := []dto.OllamaModelDTO{}

	if s.client == nil {
		return &dto.OllamaModelsResponse{Models: empty, Error: "Ollama not configured"}
	}

	models, err := s.client.ListModels(ctx)
	if err != nil {
		s.logger.Warn("OllamaService", "Model listing failed", map[string]interface{}{"error": err.Error()})
		var statusErr *ollama.StatusError
		if errors.As(err, &statusErr) {
			return &dto.OllamaModelsResponse{Models: empty, Error: "Could not fetch models"}
		}
		return &dto.OllamaModelsResponse{Models: empty, Error: "Ollama server not available"}
	}

	res := make([]dto.OllamaModelDTO, 0, len(models))
	for _, m := range models {
		res = append(res, dto.OllamaModelDTO{
			Name:       m.Name,
			Size:       m.Size,
			Digest:     m.Digest,
			ModifiedAt: m.ModifiedAt,
			Details: dto.OllamaModelDetailsDTO{
				Format:            m.Details.Format,
				Family:            m.Details.Family,
				ParameterSize:     m.Details.ParameterSize,
				QuantizationLevel: m.Details.QuantizationLevel,
			},
		})
	}
	return &dto.OllamaModelsResponse{Models: res, CurrentModel: s.currentModel}
}
