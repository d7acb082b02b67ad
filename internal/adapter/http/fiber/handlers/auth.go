package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/gbelpiede/cx-ai-agent-prototype/internal/adapter/http/fiber/middleware"
	"github.com/gbelpiede/cx-ai-agent-prototype/internal/domain"
	"github.com/gbelpiede/cx-ai-agent-prototype/internal/ports"
)

type AuthHandler struct {
	sessions   ports.SessionService
	sessionTTL time.Duration
	log        *zap.Logger
}

func NewAuthHandler(sessions ports.SessionService, sessionTTL time.Duration, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		sessions:   sessions,
		sessionTTL: sessionTTL,
		log:        log,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req domain.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email and password are required"})
	}
	if req.CompanyName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Company name is required"})
	}

	token, sess, err := h.sessions.Signup(c.Context(), req)
	if err != nil {
		h.log.Warn("Signup failed", zap.String("email", req.Email), zap.Error(err))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	h.setSessionCookie(c, token)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"session_token": token,
		"session":       sess,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email and password are required"})
	}

	token, sess, err := h.sessions.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		h.log.Warn("Login failed", zap.String("email", req.Email), zap.Error(err))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	h.setSessionCookie(c, token)
	return c.JSON(fiber.Map{
		"session_token": token,
		"session":       sess,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sessionID, _ := c.Locals("session_id").(string)
	if sessionID != "" {
		h.sessions.Logout(c.Context(), sessionID)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return c.JSON(fiber.Map{"logged_out": true})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	sess, ok := c.Locals("session").(*domain.Session)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
	}
	return c.JSON(sess)
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(h.sessionTTL),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}
