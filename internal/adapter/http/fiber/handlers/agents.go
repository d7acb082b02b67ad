package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/gbelpiede/cx-ai-agent-prototype/internal/domain"
	"github.com/gbelpiede/cx-ai-agent-prototype/internal/ports"
	"github.com/gbelpiede/cx-ai-agent-prototype/internal/service/analytics"
)

type AgentHandler struct {
	gateway ports.BackendGateway
	log     *zap.Logger
}

func NewAgentHandler(gateway ports.BackendGateway, log *zap.Logger) *AgentHandler {
	return &AgentHandler{gateway: gateway, log: log}
}

// List fetches agents fresh from the backend on every call; nothing is
// cached between renders.
func (h *AgentHandler) List(c *fiber.Ctx) error {
	token, _ := c.Locals("backend_token").(string)

	agents, err := h.gateway.GetAgents(c.Context(), token)
	if err != nil {
		h.log.Warn("Agent list fetch failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"agents": agents,
		"cards":  analytics.PresentAgents(agents),
	})
}

func (h *AgentHandler) Create(c *fiber.Ctx) error {
	token, _ := c.Locals("backend_token").(string)

	var draft domain.AgentDraft
	if err := c.BodyParser(&draft); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if draft.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Agent name is required"})
	}

	agent, err := h.gateway.CreateAgent(c.Context(), token, draft)
	if err != nil {
		h.log.Warn("Agent creation failed", zap.String("name", draft.Name), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(agent)
}

// Update relays a partial update; only the fields present in the body are
// sent upstream.
func (h *AgentHandler) Update(c *fiber.Ctx) error {
	token, _ := c.Locals("backend_token").(string)
	agentID := c.Params("id")

	var updates map[string]interface{}
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if len(updates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No fields to update"})
	}

	agent, err := h.gateway.UpdateAgent(c.Context(), token, agentID, updates)
	if err != nil {
		h.log.Warn("Agent update failed", zap.String("agent_id", agentID), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(agent)
}

func (h *AgentHandler) Activate(c *fiber.Ctx) error {
	token, _ := c.Locals("backend_token").(string)
	agentID := c.Params("id")

	agent, err := h.gateway.ActivateAgent(c.Context(), token, agentID)
	if err != nil {
		h.log.Warn("Agent activation failed", zap.String("agent_id", agentID), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(agent)
}
