package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/gbelpiede/cx-ai-agent-prototype/internal/ports"
)

// SessionCookie is the fallback location for the browser session token when
// no Authorization header is sent.
const SessionCookie = "dashboard_session"

// SessionRequired resolves the caller's session from a bearer header or the
// session cookie and stashes it in locals for the handlers.
func SessionRequired(service ports.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := ""

		authHeader := c.Get("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid authorization header format"})
			}
			token = parts[1]
		} else {
			token = c.Cookies(SessionCookie)
		}

		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing session token"})
		}

		sess, err := service.Validate(c.Context(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired session"})
		}

		c.Locals("session", sess)
		c.Locals("session_id", sess.ID)
		c.Locals("backend_token", sess.Token)

		return c.Next()
	}
}
