package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/gbelpiede/cx-ai-agent-prototype/internal/domain"
	"github.com/gbelpiede/cx-ai-agent-prototype/internal/ports"
)

type CheckInHandler struct {
	gateway ports.BackendGateway
	log     *zap.Logger
}

func NewCheckInHandler(gateway ports.BackendGateway, log *zap.Logger) *CheckInHandler {
	return &CheckInHandler{gateway: gateway, log: log}
}

func (h *CheckInHandler) Create(c *fiber.Ctx) error {
	token, _ := c.Locals("backend_token").(string)

	var req domain.CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.AgentID == "" || req.EmployeeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "agent_id and employee_id are required"})
	}
	if req.FlowName == "" {
		req.FlowName = domain.FlowRetentionCheckin
	}

	checkin, err := h.gateway.CreateCheckIn(c.Context(), token, req)
	if err != nil {
		h.log.Warn("Check-in creation failed", zap.String("agent_id", req.AgentID), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(checkin)
}

// Get returns the conversation state as the backend sent it. The dashboard
// does not interpret it beyond rendering.
func (h *CheckInHandler) Get(c *fiber.Ctx) error {
	token, _ := c.Locals("backend_token").(string)
	checkinID := c.Params("id")

	checkin, err := h.gateway.GetCheckIn(c.Context(), token, checkinID)
	if err != nil {
		h.log.Warn("Check-in fetch failed", zap.String("checkin_id", checkinID), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(checkin)
}

func (h *CheckInHandler) SendMessage(c *fiber.Ctx) error {
	token, _ := c.Locals("backend_token").(string)
	checkinID := c.Params("id")

	var req domain.MessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.UserMessage == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_message is required"})
	}

	result, err := h.gateway.SendMessage(c.Context(), token, checkinID, req.UserMessage, req.Source)
	if err != nil {
		h.log.Warn("Message send failed", zap.String("checkin_id", checkinID), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(result)
}
