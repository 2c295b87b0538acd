package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"alkulous-relay/internal/pkg/logger"
	"alkulous-relay/internal/pkg/serverutils"
	"alkulous-relay/internal/repository/memory"
	"alkulous-relay/internal/repository/unitofwork"
	"alkulous-relay/internal/service"
	"alkulous-relay/pkg/events"
	"alkulous-relay/pkg/llm"
	"alkulous-relay/pkg/llm/backend"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	reply string
	err   error
	calls int
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	s.calls++
	return s.reply, s.err
}

type discardPublisher struct{}

func (discardPublisher) Publish(ctx context.Context, event events.Event) error { return nil }

type harness struct {
	uowFactory unitofwork.RepositoryFactory
	brain      *stubProvider
	ollama     *stubProvider
	apiKeys    service.IApiKeyService
	log        logger.ILogger
}

func newHarness() *harness {
	log := logger.NewNopLogger()
	uowFactory := memory.NewStore().NewRepositoryFactory()
	return &harness{
		uowFactory: uowFactory,
		brain:      &stubProvider{reply: "brain reply"},
		ollama:     &stubProvider{reply: "ollama reply"},
		apiKeys:    service.NewApiKeyService(uowFactory, discardPublisher{}, log),
		log:        log,
	}
}

func (h *harness) selector(withOllama bool) *backend.Selector {
	cfg := backend.Config{LocalBrainURL: "http://brain.test"}
	if withOllama {
		cfg.OllamaURL = "http://ollama.test"
	}
	return backend.NewSelector(cfg).WithProviders(h.brain, h.ollama)
}

func (h *harness) rows(t *testing.T) int64 {
	t.Helper()
	ctx := context.Background()
	n, err := h.uowFactory.NewUnitOfWork(ctx).MessageRepository().Count(ctx)
	require.NoError(t, err)
	return n
}

func newApp(log logger.ILogger) *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: serverutils.ErrorHandler(log)})
}

func passThrough(c *fiber.Ctx) error {
	c.Locals("principal", serverutils.DevPrincipal())
	return c.Next()
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, v), string(raw))
}
