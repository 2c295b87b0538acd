package controller

import (
	"errors"
	"testing"

	"alkulous-relay/internal/dto"
	"alkulous-relay/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatApp(h *harness, withOllama bool) *fiber.App {
	svc := service.NewChatService(h.uowFactory, h.selector(withOllama), discardPublisher{}, h.log)
	app := newApp(h.log)
	NewChatController(svc, h.log).RegisterRoutes(app.Group("/api"), passThrough)
	return app
}

func TestChatSendAndHistory(t *testing.T) {
	h := newHarness()
	app := newChatApp(h, true)

	resp, err := app.Test(jsonRequest("POST", "/api/chat", `{"message":"hello"}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var chat dto.ChatResponse
	decode(t, resp, &chat)
	assert.Equal(t, "ollama reply", chat.Response)

	resp, err = app.Test(jsonRequest("GET", "/api/chat/history?limit=10", ""))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var history []dto.MessageResponse
	decode(t, resp, &history)
	require.Len(t, history, 2)
	assert.Equal(t, "assistant", history[0].Role)
	assert.Equal(t, "user", history[1].Role)
}

func TestChatSendUsesLocalBrainWhenAsked(t *testing.T) {
	h := newHarness()
	app := newChatApp(h, true)

	resp, err := app.Test(jsonRequest("POST", "/api/chat", `{"message":"hi","useLocalBrain":true}`))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var chat dto.ChatResponse
	decode(t, resp, &chat)
	assert.Equal(t, "brain reply", chat.Response)
	assert.EqualValues(t, 2, h.rows(t))
	assert.Equal(t, 1, h.brain.calls)
	assert.Zero(t, h.ollama.calls)
}

func TestChatSendFoldsBackendErrorIntoReply(t *testing.T) {
	h := newHarness()
	h.ollama.err = errors.New("connection refused")
	app := newChatApp(h, true)

	resp, err := app.Test(jsonRequest("POST", "/api/chat", `{"message":"hi"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var chat dto.ChatResponse
	decode(t, resp, &chat)
	assert.NotEmpty(t, chat.Response)
}

func TestChatSendRejectsMissingMessage(t *testing.T) {
	for _, body := range []string{`{}`, `{"message":""}`} {
		h := newHarness()
		app := newChatApp(h, true)

		resp, err := app.Test(jsonRequest("POST", "/api/chat", body))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, body)
		assert.Zero(t, h.rows(t), body)
		assert.Zero(t, h.ollama.calls, body)
	}
}

func TestChatClear(t *testing.T) {
	h := newHarness()
	app := newChatApp(h, true)

	_, err := app.Test(jsonRequest("POST", "/api/chat", `{"message":"hello"}`))
	require.NoError(t, err)

	resp, err := app.Test(jsonRequest("POST", "/api/chat/clear", ""))
	require.NoError(t, err)

	var body dto.SuccessFlagResponse
	decode(t, resp, &body)
	assert.True(t, body.Success)

	resp, err = app.Test(jsonRequest("GET", "/api/chat/history", ""))
	require.NoError(t, err)
	var history []dto.MessageResponse
	decode(t, resp, &history)
	assert.Empty(t, history)
}
