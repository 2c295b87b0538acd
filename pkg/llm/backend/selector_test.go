package backend

import (
	"context"
	"errors"
	"testing"

	"alkulous-relay/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	reply string
	err   error
	calls int
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	f.calls++
	return f.reply, f.err
}

func TestSelect(t *testing.T) {
	both := Config{LocalBrainURL: "http://brain:8080", OllamaURL: "http://ollama:11434/"}

	tests := []struct {
		name          string
		cfg           Config
		useLocalBrain bool
		useOllama     bool
		want          Kind
	}{
		{name: "local brain requested and configured", cfg: both, useLocalBrain: true, want: KindLocalBrain},
		{name: "local brain requested but missing", cfg: Config{OllamaURL: "http://ollama"}, useLocalBrain: true, want: KindOllama},
		{name: "ollama default", cfg: both, want: KindOllama},
		{name: "useOllama has no effect", cfg: both, useLocalBrain: true, useOllama: true, want: KindLocalBrain},
		{name: "nothing configured", cfg: Config{}, useLocalBrain: true, want: KindUnconfigured},
		{name: "only local brain, not requested", cfg: Config{LocalBrainURL: "http://brain"}, want: KindUnconfigured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewSelector(tt.cfg).Select(tt.useLocalBrain, tt.useOllama)
			assert.Equal(t, tt.want, got.Kind)
		})
	}
}

func TestSelectDefaultsAndBaseURL(t *testing.T) {
	s := NewSelector(Config{LocalBrainURL: "http://brain:8080", OllamaURL: "http://ollama:11434/"})

	brain := s.Select(true, false)
	assert.Equal(t, "http://brain:8080/v1", brain.BaseURL)
	assert.Equal(t, DefaultLocalBrainModel, brain.Model)

	ollama := s.Select(false, false)
	assert.Equal(t, "http://ollama:11434/v1", ollama.BaseURL)
	assert.Equal(t, DefaultOllamaModel, ollama.Model)
}

func TestPublic(t *testing.T) {
	_, ok := NewSelector(Config{LocalBrainURL: "http://brain"}).Public()
	assert.False(t, ok, "public traffic never falls back to local brain")

	b, ok := NewSelector(Config{OllamaURL: "http://ollama", OllamaModel: "llama3"}).Public()
	require.True(t, ok)
	assert.Equal(t, KindOllama, b.Kind)
	assert.Equal(t, "llama3", b.Model)
}

func TestReply(t *testing.T) {
	ctx := context.Background()

	t.Run("unconfigured returns sentinel without calling out", func(t *testing.T) {
		reply, err := NewSelector(Config{}).Select(false, false).Reply(ctx, nil)
		assert.NoError(t, err)
		assert.Equal(t, UnconfiguredMessage, reply)
	})

	t.Run("content passes through", func(t *testing.T) {
		fake := &fakeProvider{reply: "hi"}
		b := NewSelector(Config{OllamaURL: "http://o"}).WithProviders(nil, fake).Select(false, false)

		reply, err := b.Reply(ctx, nil)
		assert.NoError(t, err)
		assert.Equal(t, "hi", reply)
		assert.Equal(t, 1, fake.calls)
	})

	t.Run("empty content uses backend fallback", func(t *testing.T) {
		b := NewSelector(Config{LocalBrainURL: "http://b"}).WithProviders(&fakeProvider{}, nil).Select(true, false)

		reply, err := b.Reply(ctx, nil)
		assert.NoError(t, err)
		assert.Equal(t, "Local AI Brain failed to respond.", reply)
	})

	t.Run("error uses backend error text", func(t *testing.T) {
		b := NewSelector(Config{OllamaURL: "http://o"}).WithProviders(nil, &fakeProvider{err: errors.New("refused")}).Select(false, false)

		reply, err := b.Reply(ctx, nil)
		assert.Error(t, err)
		assert.Contains(t, reply, "Could not connect to Ollama")
	})
}
