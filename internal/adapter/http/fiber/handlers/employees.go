package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/gbelpiede/cx-ai-agent-prototype/internal/domain"
	"github.com/gbelpiede/cx-ai-agent-prototype/internal/ports"
	"github.com/gbelpiede/cx-ai-agent-prototype/internal/service/importer"
)

type EmployeeHandler struct {
	gateway  ports.BackendGateway
	importer *importer.Service
	log      *zap.Logger
}

func NewEmployeeHandler(gateway ports.BackendGateway, imp *importer.Service, log *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{gateway: gateway, importer: imp, log: log}
}

func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	token, _ := c.Locals("backend_token").(string)

	agentID := c.Query("agent_id")
	if agentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "agent_id is required"})
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	pageData, err := h.gateway.GetEmployees(c.Context(), token, agentID, page, limit)
	if err != nil {
		h.log.Warn("Employee list fetch failed", zap.String("agent_id", agentID), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(pageData)
}

func (h *EmployeeHandler) Add(c *fiber.Ctx) error {
	token, _ := c.Locals("backend_token").(string)

	agentID := c.Query("agent_id")
	if agentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "agent_id is required"})
	}

	var emp domain.Employee
	if err := c.BodyParser(&emp); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if emp.FirstName == "" || emp.LastName == "" || emp.Phone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "First name, last name and phone are required"})
	}
	if emp.Department == "" {
		emp.Department = importer.DefaultDepartment
	}

	created, err := h.gateway.AddEmployee(c.Context(), token, agentID, emp)
	if err != nil {
		h.log.Warn("Employee add failed", zap.String("agent_id", agentID), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// Import accepts a multipart CSV roster and registers each row. A failing
// row aborts the batch; the error names the row so the file can be fixed
// and re-uploaded.
func (h *EmployeeHandler) Import(c *fiber.Ctx) error {
	token, _ := c.Locals("backend_token").(string)

	agentID := c.Query("agent_id")
	if agentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "agent_id is required"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "CSV file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Could not read uploaded file"})
	}
	defer file.Close()

	result, err := h.importer.Import(c.Context(), token, agentID, file)
	if err != nil {
		h.log.Warn("Roster import failed", zap.String("agent_id", agentID), zap.Error(err))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}
