package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/gbelpiede/cx-ai-agent-prototype/internal/domain"
	"github.com/gbelpiede/cx-ai-agent-prototype/internal/ports"
	"github.com/gbelpiede/cx-ai-agent-prototype/internal/service/analytics"
)

type DashboardHandler struct {
	gateway ports.BackendGateway
	log     *zap.Logger
}

func NewDashboardHandler(gateway ports.BackendGateway, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{gateway: gateway, log: log}
}

// Home composes the landing screen from several backend reads. Each block
// degrades independently: a failed metric renders as "N/A" instead of
// failing the whole screen.
func (h *DashboardHandler) Home(c *fiber.Ctx) error {
	token, _ := c.Locals("backend_token").(string)
	sess, _ := c.Locals("session").(*domain.Session)

	summary, summaryErr := h.gateway.GetDashboardSummary(c.Context(), token)
	if summaryErr != nil {
		h.log.Warn("Summary fetch failed", zap.Error(summaryErr))
	}

	agents, agentsErr := h.gateway.GetAgents(c.Context(), token)
	if agentsErr != nil {
		h.log.Warn("Agent list fetch failed", zap.Error(agentsErr))
		agents = []domain.Agent{}
	}

	// Employee headcount comes from the first agent's directory page; the
	// backend has no account-wide count.
	employeeTotal := analytics.NotAvailable
	if len(agents) > 0 {
		page, err := h.gateway.GetEmployees(c.Context(), token, agents[0].ID, 1, 1)
		if err != nil {
			h.log.Warn("Employee total fetch failed", zap.Error(err))
		} else {
			employeeTotal = strconv.Itoa(page.Total)
		}
	}

	resp := fiber.Map{
		"summary":        analytics.PresentSummary(summary, summaryErr),
		"agents":         analytics.PresentAgents(agents),
		"employee_total": employeeTotal,
	}
	if sess != nil {
		resp["company_name"] = sess.Customer.CompanyName
	}

	return c.JSON(resp)
}

// Analytics renders the dedicated analytics screen: sentiment distribution
// plus the formatted ROI cards.
func (h *DashboardHandler) Analytics(c *fiber.Ctx) error {
	token, _ := c.Locals("backend_token").(string)

	sentiment, sentimentErr := h.gateway.GetSentimentBreakdown(c.Context(), token)
	if sentimentErr != nil {
		h.log.Warn("Sentiment fetch failed", zap.Error(sentimentErr))
	}

	roi, roiErr := h.gateway.GetROIMetrics(c.Context(), token)
	if roiErr != nil {
		h.log.Warn("ROI fetch failed", zap.Error(roiErr))
	}

	resp := fiber.Map{
		"roi": analytics.PresentROI(roi, roiErr),
	}
	if sentimentErr == nil {
		resp["sentiment"] = sentiment
	} else {
		resp["sentiment"] = nil
	}

	return c.JSON(resp)
}

func (h *DashboardHandler) Documents(c *fiber.Ctx) error {
	token, _ := c.Locals("backend_token").(string)

	docs, err := h.gateway.GetDocuments(c.Context(), token)
	if err != nil {
		h.log.Warn("Documents fetch failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"documents": docs})
}
