package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/gbelpiede/cx-ai-agent-prototype/internal/domain"
	"github.com/gbelpiede/cx-ai-agent-prototype/internal/ports"
)

type SettingsHandler struct {
	sessions ports.SessionService
	log      *zap.Logger
}

func NewSettingsHandler(sessions ports.SessionService, log *zap.Logger) *SettingsHandler {
	return &SettingsHandler{sessions: sessions, log: log}
}

func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	sess, ok := c.Locals("session").(*domain.Session)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
	}
	return c.JSON(sess.Customer)
}

type UpdateSettingsRequest struct {
	Timezone string `json:"timezone"`
	Language string `json:"language"`
}

// Update changes session-scoped preferences. The backend has no profile
// write endpoint, so these live only as long as the session does.
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	sessionID, _ := c.Locals("session_id").(string)

	var req UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Timezone == "" && req.Language == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No fields to update"})
	}

	sess, err := h.sessions.UpdateProfile(c.Context(), sessionID, req.Timezone, req.Language)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired session"})
	}

	return c.JSON(sess.Customer)
}
