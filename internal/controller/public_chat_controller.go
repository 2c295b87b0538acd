package controller

import (
	"errors"

	"alkulous-relay/internal/constant"
	"alkulous-relay/internal/dto"
	"alkulous-relay/internal/pkg/serverutils"
	"alkulous-relay/internal/service"

	"github.com/gofiber/fiber/v2"
)

const apiKeyHeader = "x-api-key"

type IPublicChatController interface {
	RegisterRoutes(r fiber.Router)
	Send(ctx *fiber.Ctx) error
}

type publicChatController struct {
	service service.IPublicChatService
}

func NewPublicChatController(service service.IPublicChatService) IPublicChatController {
	return &publicChatController{service: service}
}

func (c *publicChatController) RegisterRoutes(r fiber.Router) {
	r.Post("/v1/chat", c.Send)
}

// Send authenticates before looking at the body.
func (c *publicChatController) Send(ctx *fiber.Ctx) error {
	key, err := c.service.Authenticate(ctx.UserContext(), ctx.Get(apiKeyHeader))
	switch {
	case errors.Is(err, service.ErrMissingApiKey):
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing API Key"})
	case errors.Is(err, service.ErrInvalidApiKey):
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid API Key"})
	case err != nil:
		return err
	}

	var req dto.PublicChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendChat(ctx.UserContext(), key, &req)
	if errors.Is(err, service.ErrBackendUnconfigured) {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": constant.OllamaNotConfiguredMessage})
	}
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	return ctx.JSON(res)
}
