package controller

import (
	"strconv"

	"alkulous-relay/internal/dto"
	"alkulous-relay/internal/pkg/serverutils"
	"alkulous-relay/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IApiKeyController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type apiKeyController struct {
	service service.IApiKeyService
}

func NewApiKeyController(service service.IApiKeyService) IApiKeyController {
	return &apiKeyController{service: service}
}

func (c *apiKeyController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/admin/keys")
	h.Use(auth)
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Delete("/:id", c.Delete)
}

func (c *apiKeyController) List(ctx *fiber.Ctx) error {
	res, err := c.service.List(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *apiKeyController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateApiKeyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *apiKeyController) Delete(ctx *fiber.Ctx) error {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}

	if err := c.service.Delete(ctx.UserContext(), id); err != nil {
		return err
	}
	return ctx.JSON(dto.SuccessFlagResponse{Success: true})
}
