package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/guard-service/internal/api/dto"
	"github.com/spec-kit/guard-service/internal/auth"
)

// ProfileHandler exposes the authenticated caller's own identity.
type ProfileHandler struct{}

// NewProfileHandler constructs handler.
func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{}
}

// Me handles GET /api/v1/me. Runs behind RequireAuth.
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	response := fiber.Map{"user": dto.NewUserResponse(user)}
	if authCtx, ok := auth.AuthFromContext(c); ok {
		response["auth"] = dto.NewAuthContextResponse(authCtx)
	}
	return c.JSON(fiber.Map{"success": true, "data": response})
}

// Permissions handles GET /api/v1/me/permissions. Runs behind RequireAuth.
func (h *ProfileHandler) Permissions(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	permissions := user.Permissions
	if permissions == nil {
		permissions = []string{}
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"role":        user.Role,
			"permissions": permissions,
			"accessLevel": user.AccessLevel,
		},
	})
}

// Status handles GET /api/v1/status. Runs behind OptionalAuth: it answers
// for anonymous callers too.
func (h *ProfileHandler) Status(c *fiber.Ctx) error {
	data := fiber.Map{"authenticated": false}
	if user, ok := auth.UserFromContext(c); ok {
		data["authenticated"] = true
		data["user"] = dto.NewUserResponse(user)
	}
	return c.JSON(fiber.Map{"success": true, "data": data})
}
