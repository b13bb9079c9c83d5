package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/guard-service/internal/auth"
)

// ClientHandler serves the client-portal entry point. The portal's business
// content lives in the downstream CRUD services; this surface only proves
// out client-role gating and hands back the caller's client profile.
type ClientHandler struct{}

// NewClientHandler constructs handler.
func NewClientHandler() *ClientHandler {
	return &ClientHandler{}
}

// Portal handles GET /api/v1/client/portal. Runs behind RequireClient.
func (h *ClientHandler) Portal(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"clientId": user.ID,
			"email":    user.Email,
			"profile":  user.Profile,
		},
	})
}
