package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"alkulous-relay/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer ollama", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hello there"}}]}`))
	}))
	defer srv.Close()

	p := NewProvider(srv.URL+"/v1/", "gemma3:4b", "ollama", 5*time.Second)
	reply, err := p.Chat(context.Background(), []llm.Message{
		{Role: "system", Content: "be brief"},
		{Role: "user", Content: "hi"},
	})

	require.NoError(t, err)
	assert.Equal(t, "hello there", reply)
	assert.Equal(t, "gemma3:4b", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.False(t, got.Stream)
}

func TestChatModelOverride(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	p := NewProvider(srv.URL, "default", "", time.Second)
	_, err := p.Chat(context.Background(), []llm.Message{{Role: "user", Content: "x"}}, llm.WithModel("llama3"), llm.WithTemperature(0.2), llm.WithMaxTokens(64))

	require.NoError(t, err)
	assert.Equal(t, "llama3", got.Model)
	require.NotNil(t, got.Temperature)
	assert.Equal(t, 0.2, *got.Temperature)
	assert.Equal(t, 64, got.MaxTokens)
}

func TestChatFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr bool
		want    string
	}{
		{name: "null content", status: 200, body: `{"choices":[{"message":{"content":null}}]}`, want: ""},
		{name: "no choices", status: 200, body: `{"choices":[]}`, wantErr: true},
		{name: "server error", status: 500, body: `boom`, wantErr: true},
		{name: "bad json", status: 200, body: `{`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			reply, err := NewProvider(srv.URL, "m", "", time.Second).Chat(context.Background(), nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, reply)
		})
	}
}

func TestChatUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewProvider(url, "m", "", time.Second).Chat(context.Background(), nil)
	assert.Error(t, err)
}
