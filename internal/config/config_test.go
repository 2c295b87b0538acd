package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OLLAMA_BASE_URL", "")
	t.Setenv("LOCAL_AI_BRAIN_URL", "")
	t.Setenv("OLLAMA_MODEL", "gemma3:4b")
	t.Setenv("LLM_TIMEOUT_SECONDS", "not-a-number")
	t.Setenv("AUTH_DEV_BYPASS", "")

	cfg := Load()

	assert.Empty(t, cfg.Ai.OllamaBaseURL, "ollama must stay unconfigured when env is empty")
	assert.Empty(t, cfg.Ai.LocalBrainURL)
	assert.Equal(t, "gemma3:4b", cfg.Ai.OllamaModel)
	assert.Equal(t, 120, cfg.Ai.TimeoutSeconds)
	assert.False(t, cfg.App.AuthDevBypass)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OLLAMA_BASE_URL", "http://ollama:11434")
	t.Setenv("OLLAMA_MODEL", "llama3")
	t.Setenv("LLM_TIMEOUT_SECONDS", "30")
	t.Setenv("AUTH_DEV_BYPASS", "true")
	t.Setenv("GO_ENV", "production")

	cfg := Load()

	assert.Equal(t, "http://ollama:11434", cfg.Ai.OllamaBaseURL)
	assert.Equal(t, "llama3", cfg.Ai.OllamaModel)
	assert.Equal(t, 30, cfg.Ai.TimeoutSeconds)
	assert.True(t, cfg.App.AuthDevBypass)
	assert.True(t, cfg.IsProduction())
}
