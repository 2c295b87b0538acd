package controller

import (
	"alkulous-relay/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IOllamaController interface {
	RegisterRoutes(r fiber.Router)
	Status(ctx *fiber.Ctx) error
	Models(ctx *fiber.Ctx) error
}

type ollamaController struct {
	service service.IOllamaService
}

func NewOllamaController(service service.IOllamaService) IOllamaController {
	return &ollamaController{service: service}
}

func (c *ollamaController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ollama")
	h.Get("/status", c.Status)
	h.Get("/models", c.Models)
}

// Both endpoints always answer 200; failures are described in the body.
func (c *ollamaController) Status(ctx *fiber.Ctx) error {
	return ctx.JSON(c.service.Status(ctx.UserContext()))
}

func (c *ollamaController) Models(ctx *fiber.Ctx) error {
	return ctx.JSON(c.service.Models(ctx.UserContext()))
}
