package handler

import (
	"alkulous-relay/internal/pkg/logger"
	"alkulous-relay/internal/pkg/serverutils"
	internalWS "alkulous-relay/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type LiveHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewLiveHandler(hub *internalWS.Hub, log logger.ILogger) *LiveHandler {
	return &LiveHandler{hub: hub, logger: log}
}

func (h *LiveHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	r.Get("/chat/live", auth, h.ServeWs)
}

// ServeWs upgrades an authenticated request onto the live feed.
func (h *LiveHandler) ServeWs(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	principalID := ""
	if p := serverutils.CurrentPrincipal(c); p != nil {
		principalID = p.Id
	}

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("LiveHandler", "Starting live session", map[string]interface{}{"principal_id": principalID})
		internalWS.Serve(h.hub, conn, principalID)
		h.logger.Info("LiveHandler", "Live session ended", map[string]interface{}{"principal_id": principalID})
	})(c)
}
