package serverutils

import (
	"errors"

	"alkulous-relay/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders every error that reaches Fiber as an ErrorBody.
// Unknown errors are logged and hidden behind a generic 500.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			body := ErrorResponse(fiber.StatusBadRequest, validationErr.Error())
			body.Details = validationErr.Fields
			return ctx.Status(fiber.StatusBadRequest).JSON(body)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		log.Error("HTTP", "Unhandled request error", map[string]interface{}{
			"method": ctx.Method(),
			"path":   ctx.Path(),
			"error":  err,
		})
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal Server Error"))
	}
}
