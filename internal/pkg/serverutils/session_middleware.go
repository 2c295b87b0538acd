package serverutils

import (
	"errors"
	"time"

	"alkulous-relay/internal/entity"
	"alkulous-relay/internal/pkg/logger"
	"alkulous-relay/internal/service"

	"github.com/gofiber/fiber/v2"
)

const principalLocalsKey = "principal"

// DevPrincipal is injected for every request when AUTH_DEV_BYPASS is on.
func DevPrincipal() *entity.SessionPrincipal {
	return &entity.SessionPrincipal{
		Id:        "dev-user",
		Email:     "dev@localhost",
		FirstName: "Dev",
		LastName:  "User",
		ExpiresAt: time.Now().Add(service.PrincipalTTL).Unix(),
	}
}

// SessionMiddleware guards operator routes with the session cookie.
func SessionMiddleware(sessions service.ISessionService, devBypass bool, log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if devBypass {
			ctx.Locals(principalLocalsKey, DevPrincipal())
			return ctx.Next()
		}

		principal, err := sessions.Authenticate(ctx.UserContext(), ctx.Cookies(service.SessionCookieName))
		switch {
		case err == nil:
			ctx.Locals(principalLocalsKey, principal)
			return ctx.Next()
		case errors.Is(err, service.ErrSessionExpired):
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Session expired. Please login again."})
		case errors.Is(err, service.ErrUnauthorized):
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
		default:
			log.Error("SessionMiddleware", "Session lookup failed", map[string]interface{}{"error": err})
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
		}
	}
}

// CurrentPrincipal returns the principal set by SessionMiddleware, or nil.
func CurrentPrincipal(ctx *fiber.Ctx) *entity.SessionPrincipal {
	p, _ := ctx.Locals(principalLocalsKey).(*entity.SessionPrincipal)
	return p
}
