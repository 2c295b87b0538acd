package controller

import (
	"errors"
	"time"

	"alkulous-relay/internal/dto"
	"alkulous-relay/internal/pkg/logger"
	"alkulous-relay/internal/pkg/serverutils"
	"alkulous-relay/internal/service"

	"github.com/gofiber/fiber/v2"
)

const authFailureRedirect = "/auth?error=authentication_failed"

type IOAuthController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Login(ctx *fiber.Ctx) error
	Callback(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
	LegacyLogin(ctx *fiber.Ctx) error
	User(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
}

type oauthController struct {
	oauth        service.IOAuthService
	sessions     service.ISessionService
	secureCookie bool
	logger       logger.ILogger
}

func NewOAuthController(oauth service.IOAuthService, sessions service.ISessionService, secureCookie bool, log logger.ILogger) IOAuthController {
	return &oauthController{
		oauth:        oauth,
		sessions:     sessions,
		secureCookie: secureCookie,
		logger:       log,
	}
}

func (c *oauthController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	r.Get("/auth/google", c.Login)
	r.Get("/auth/google/callback", c.Callback)
	r.Get("/logout", c.Logout)
	r.Get("/login", c.LegacyLogin)
	r.Get("/auth/user", auth, c.User)
	r.Get("/auth/status", c.Status)
}

func (c *oauthController) Login(ctx *fiber.Ctx) error {
	return ctx.Redirect(c.oauth.GetLoginURL(), fiber.StatusFound)
}

func (c *oauthController) Callback(ctx *fiber.Ctx) error {
	if reason := ctx.Query("error"); reason != "" {
		c.logger.Warn("OAuthController", "Google returned an error", map[string]interface{}{"reason": reason})
		return ctx.Redirect(authFailureRedirect, fiber.StatusFound)
	}

	cookie, err := c.oauth.HandleCallback(ctx.UserContext(), ctx.Query("state"), ctx.Query("code"))
	if err != nil {
		c.logger.Warn("OAuthController", "OAuth callback failed", map[string]interface{}{"error": err.Error()})
		return ctx.Redirect(authFailureRedirect, fiber.StatusFound)
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     service.SessionCookieName,
		Value:    cookie,
		Path:     "/",
		MaxAge:   int(service.SessionTTL / time.Second),
		HTTPOnly: true,
		Secure:   c.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return ctx.Redirect("/", fiber.StatusFound)
}

func (c *oauthController) Logout(ctx *fiber.Ctx) error {
	if err := c.sessions.Destroy(ctx.UserContext(), ctx.Cookies(service.SessionCookieName)); err != nil {
		c.logger.Error("OAuthController", "Session destroy error", map[string]interface{}{"error": err})
	}
	ctx.ClearCookie(service.SessionCookieName)
	return ctx.Redirect("/", fiber.StatusFound)
}

func (c *oauthController) LegacyLogin(ctx *fiber.Ctx) error {
	return ctx.Redirect("/api/auth/google", fiber.StatusFound)
}

func (c *oauthController) User(ctx *fiber.Ctx) error {
	principal := serverutils.CurrentPrincipal(ctx)
	if principal == nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}

	user, err := c.oauth.GetUser(ctx.UserContext(), principal.Id)
	if errors.Is(err, service.ErrUserNotFound) {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}
	if err != nil {
		c.logger.Error("OAuthController", "Error fetching user", map[string]interface{}{"error": err})
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch user"})
	}
	return ctx.JSON(user)
}

func (c *oauthController) Status(ctx *fiber.Ctx) error {
	principal, err := c.sessions.Authenticate(ctx.UserContext(), ctx.Cookies(service.SessionCookieName))
	if err != nil {
		return ctx.JSON(dto.AuthStatusResponse{Authenticated: false})
	}

	return ctx.JSON(dto.AuthStatusResponse{
		Authenticated: true,
		User: &dto.AuthUserDTO{
			Id:              principal.Id,
			Email:           principal.Email,
			FirstName:       principal.FirstName,
			LastName:        principal.LastName,
			ProfileImageUrl: principal.ProfileImageUrl,
		},
	})
}
