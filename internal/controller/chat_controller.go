package controller

import (
	"alkulous-relay/internal/dto"
	"alkulous-relay/internal/pkg/logger"
	"alkulous-relay/internal/pkg/serverutils"
	"alkulous-relay/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Send(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
	logger  logger.ILogger
}

func NewChatController(service service.IChatService, log logger.ILogger) IChatController {
	return &chatController{service: service, logger: log}
}

func (c *chatController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/chat")
	h.Post("", auth, c.Send)
	h.Get("/history", c.History)
	h.Post("/clear", c.Clear)
}

func (c *chatController) Send(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	principalId := ""
	if p := serverutils.CurrentPrincipal(ctx); p != nil {
		principalId = p.Id
	}

	res, err := c.service.SendChat(ctx.UserContext(), principalId, &req)
	if err != nil {
		c.logger.Error("ChatController", "Chat error", map[string]interface{}{"error": err})
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to process chat"})
	}

	return ctx.JSON(res)
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	res, err := c.service.GetHistory(ctx.UserContext(), ctx.QueryInt("limit", 0))
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *chatController) Clear(ctx *fiber.Ctx) error {
	if err := c.service.ClearHistory(ctx.UserContext()); err != nil {
		return err
	}
	return ctx.JSON(dto.SuccessFlagResponse{Success: true})
}
