package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"alkulous-relay/pkg/llm"
)

var ErrNoChoices = errors.New("completion returned no choices")

// Provider talks to any OpenAI-compatible /chat/completions endpoint
// (Ollama's /v1, llama.cpp server, vLLM).
type Provider struct {
	BaseURL   string
	ModelName string
	ApiKey    string
	Client    *http.Client
}

var _ llm.LLMProvider = &Provider{}

// NewProvider expects baseURL to already include the API version segment,
// e.g. http://localhost:11434/v1.
func NewProvider(baseURL, modelName, apiKey string, timeout time.Duration) *Provider {
	return &Provider{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		ModelName: modelName,
		ApiKey:    apiKey,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Stream      bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.ApplyOptions(opts...)

	model := p.ModelName
	if options.Model != "" {
		model = options.Model
	}

	payload := chatRequest{
		Model:     model,
		Messages:  make([]chatMessage, len(history)),
		MaxTokens: options.MaxTokens,
	}
	for i, m := range history {
		payload.Messages[i] = chatMessage{Role: m.Role, Content: m.Content}
	}
	if options.Temperature > 0 {
		t := options.Temperature
		payload.Temperature = &t
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.ApiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.ApiKey)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion error: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", ErrNoChoices
	}

	if c := parsed.Choices[0].Message.Content; c != nil {
		return *c, nil
	}
	return "", nil
}
