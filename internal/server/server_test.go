package server

import (
	"io"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"alkulous-relay/internal/bootstrap"
	"alkulous-relay/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, devBypass bool) *fiber.App {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		App: config.AppConfig{
			Port:               "0",
			Environment:        "test",
			LogFilePath:        filepath.Join(dir, "app.log"),
			AuditLogFilePath:   filepath.Join(dir, "audit.log"),
			CorsAllowedOrigins: "http://localhost:5173",
			EventsTopic:        "CHAT_EVENTS",
			AuthDevBypass:      devBypass,
		},
		Auth: config.AuthConfig{SessionSecret: "test-secret"},
		Ai:   config.AIConfig{OllamaModel: "gemma3:4b", TimeoutSeconds: 5},
	}
	container := bootstrap.NewContainer(nil, cfg)
	t.Cleanup(container.Close)
	return New(cfg, container).GetApp()
}

func TestOperatorRoutesRequireSession(t *testing.T) {
	app := newTestServer(t, false)

	for _, target := range []string{"/api/admin/keys", "/api/auth/user"} {
		resp, err := app.Test(httptest.NewRequest("GET", target, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, target)
	}
}

func TestHistoryIsOpen(t *testing.T) {
	app := newTestServer(t, false)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/chat/history", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "[]", strings.TrimSpace(string(body)))
}

func TestDevBypassOpensOperatorRoutes(t *testing.T) {
	app := newTestServer(t, true)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/admin/keys", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestUnconfiguredBackendsReport(t *testing.T) {
	app := newTestServer(t, true)

	req := httptest.NewRequest("POST", "/api/chat", strings.NewReader(`{"message":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "OLLAMA_BASE_URL")

	resp, err = app.Test(httptest.NewRequest("GET", "/api/ollama/status", nil))
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"configured":false`)
}

func TestHealth(t *testing.T) {
	app := newTestServer(t, false)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/health", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"success":true`)
}
