package controller

import (
	"errors"

	"alkulous-relay/internal/constant"
	"alkulous-relay/internal/dto"
	"alkulous-relay/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IIdentityController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
}

type identityController struct {
	service service.IPublicChatService
}

func NewIdentityController(service service.IPublicChatService) IIdentityController {
	return &identityController{service: service}
}

// RegisterRoutes expects the app root; the endpoint lives outside /api.
func (c *identityController) RegisterRoutes(r fiber.Router) {
	r.Post("/alkulous/sys/ai/01", c.Ask)
}

func (c *identityController) Ask(ctx *fiber.Ctx) error {
	var req dto.IdentityRequest
	// A malformed body is treated like a missing prompt.
	_ = ctx.BodyParser(&req)
	if req.Prompt == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.IdentityErrorResponse{Error: "No prompt provided"})
	}

	res, err := c.service.Identity(ctx.UserContext(), &req)
	if errors.Is(err, service.ErrBackendUnconfigured) {
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.IdentityErrorResponse{Error: constant.OllamaNotConfiguredMessage})
	}
	if err != nil {
		details := err.Error()
		var backendErr *service.BackendError
		if errors.As(err, &backendErr) {
			details = backendErr.Err.Error()
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.IdentityErrorResponse{
			Error:   constant.IdentityUnreachableMessage,
			Details: details,
		})
	}

	return ctx.JSON(res)
}
