package handler

import (
	"net/http/httptest"
	"testing"

	"alkulous-relay/internal/pkg/logger"
	internalWS "alkulous-relay/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeWsRequiresUpgrade(t *testing.T) {
	log := logger.NewNopLogger()
	h := NewLiveHandler(internalWS.NewHub(nil, log), log)

	app := fiber.New()
	h.RegisterRoutes(app, func(c *fiber.Ctx) error { return c.Next() })

	resp, err := app.Test(httptest.NewRequest("GET", "/chat/live", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}

func TestServeWsRunsAuthFirst(t *testing.T) {
	log := logger.NewNopLogger()
	h := NewLiveHandler(internalWS.NewHub(nil, log), log)

	app := fiber.New()
	h.RegisterRoutes(app, func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/chat/live", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
