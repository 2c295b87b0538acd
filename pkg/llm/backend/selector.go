// Package backend decides which inference endpoint answers a chat turn.
package backend

import (
	"context"
	"strings"
	"time"

	"alkulous-relay/pkg/llm"
	"alkulous-relay/pkg/llm/openai"
)

type Kind string

const (
	KindLocalBrain   Kind = "local-brain"
	KindOllama       Kind = "ollama"
	KindUnconfigured Kind = "unconfigured"
)

const (
	DefaultLocalBrainModel = "local-brain"
	DefaultOllamaModel     = "gemma3:4b"

	UnconfiguredMessage = "Error: Ollama is not configured. Please set OLLAMA_BASE_URL in your .env file and ensure Ollama is running."
)

// Config carries the endpoints resolved at startup. An empty URL leaves
// that backend unconfigured.
type Config struct {
	LocalBrainURL   string
	LocalBrainModel string
	OllamaURL       string
	OllamaModel     string
	Timeout         time.Duration
}

// Backend is one resolved inference target together with the texts shown
// to the operator when it answers empty or fails.
type Backend struct {
	Kind          Kind
	BaseURL       string
	Model         string
	EmptyFallback string
	ErrorMessage  string
	Provider      llm.LLMProvider
}

// Reply dispatches messages and folds the outcome into operator-facing text.
// Unconfigured backends return the sentinel without any network call. On a
// provider error the backend's error text is returned along with err so the
// caller can log it.
func (b Backend) Reply(ctx context.Context, messages []llm.Message) (string, error) {
	if b.Kind == KindUnconfigured || b.Provider == nil {
		return UnconfiguredMessage, nil
	}

	content, err := b.Provider.Chat(ctx, messages)
	if err != nil {
		return b.ErrorMessage, err
	}
	if content == "" {
		return b.EmptyFallback, nil
	}
	return content, nil
}

type Selector struct {
	localBrain *Backend
	ollama     *Backend
}

func NewSelector(cfg Config) *Selector {
	s := &Selector{}

	if cfg.LocalBrainURL != "" {
		model := orDefault(cfg.LocalBrainModel, DefaultLocalBrainModel)
		base := apiBase(cfg.LocalBrainURL)
		s.localBrain = &Backend{
			Kind:          KindLocalBrain,
			BaseURL:       base,
			Model:         model,
			EmptyFallback: "Local AI Brain failed to respond.",
			ErrorMessage:  "Error: Could not connect to the local AI Brain server.",
			Provider:      openai.NewProvider(base, model, "local-brain", cfg.Timeout),
		}
	}

	if cfg.OllamaURL != "" {
		model := orDefault(cfg.OllamaModel, DefaultOllamaModel)
		base := apiBase(cfg.OllamaURL)
		s.ollama = &Backend{
			Kind:          KindOllama,
			BaseURL:       base,
			Model:         model,
			EmptyFallback: "Ollama failed to respond.",
			ErrorMessage:  "Error: Could not connect to Ollama. Make sure Ollama is running with `ollama serve` and the model is available.",
			Provider:      openai.NewProvider(base, model, "ollama", cfg.Timeout),
		}
	}

	return s
}

// Select picks the backend for an operator chat turn. useOllama is accepted
// for request compatibility only; Ollama is chosen whenever local brain is
// not requested or not available.
func (s *Selector) Select(useLocalBrain, useOllama bool) Backend {
	if useLocalBrain && s.localBrain != nil {
		return *s.localBrain
	}
	if s.ollama != nil {
		return *s.ollama
	}
	return Backend{Kind: KindUnconfigured}
}

// Public returns the Ollama backend used by API-key and identity traffic.
func (s *Selector) Public() (Backend, bool) {
	if s.ollama == nil {
		return Backend{Kind: KindUnconfigured}, false
	}
	return *s.ollama, true
}

// WithProviders replaces the HTTP providers of configured backends. Used by
// tests to inject fakes.
func (s *Selector) WithProviders(localBrain, ollama llm.LLMProvider) *Selector {
	if s.localBrain != nil && localBrain != nil {
		s.localBrain.Provider = localBrain
	}
	if s.ollama != nil && ollama != nil {
		s.ollama.Provider = ollama
	}
	return s
}

func apiBase(url string) string {
	return strings.TrimRight(url, "/") + "/v1"
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
