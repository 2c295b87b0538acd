package llm

import (
	"context"
)

// Message is a chat turn in provider-agnostic form.
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // overrides the provider default
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// LLMProvider is any chat-completion backend.
type LLMProvider interface {
	// Chat returns the assistant content of the first choice. An empty
	// string with a nil error means the model answered with no content.
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)
}

func ApplyOptions(opts ...Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}
