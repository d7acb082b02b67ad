package ports

import (
	"context"

	"github.com/gbelpiede/cx-ai-agent-prototype/internal/domain"
)

// BackendGateway is the stateless wrapper over the remote REST backend: one
// method per endpoint, one HTTP round trip per call. Implementations must
// normalize every failure (non-2xx status or transport fault) into a
// *backend.RequestFailedError and must never retain state between calls.
type BackendGateway interface {
	// Auth
	Signup(ctx context.Context, req domain.SignupRequest) (*domain.AuthResult, error)
	Login(ctx context.Context, email, password string) (*domain.AuthResult, error)

	// Agents
	CreateAgent(ctx context.Context, token string, draft domain.AgentDraft) (*domain.Agent, error)
	GetAgents(ctx context.Context, token string) ([]domain.Agent, error)
	UpdateAgent(ctx context.Context, token, agentID string, updates map[string]interface{}) (*domain.Agent, error)
	ActivateAgent(ctx context.Context, token, agentID string) (*domain.Agent, error)

	// Employees
	AddEmployee(ctx context.Context, token, agentID string, emp domain.Employee) (*domain.Employee, error)
	GetEmployees(ctx context.Context, token, agentID string, page, limit int) (*domain.EmployeePage, error)

	// Check-ins. Conversation state is opaque backend data, so these return
	// the decoded JSON as-is.
	CreateCheckIn(ctx context.Context, token string, req domain.CheckInRequest) (map[string]interface{}, error)
	GetCheckIn(ctx context.Context, token, checkinID string) (map[string]interface{}, error)
	SendMessage(ctx context.Context, token, checkinID, userMessage, source string) (map[string]interface{}, error)

	// Analytics
	GetDashboardSummary(ctx context.Context, token string) (*domain.DashboardSummary, error)
	GetSentimentBreakdown(ctx context.Context, token string) (*domain.SentimentBreakdown, error)
	GetROIMetrics(ctx context.Context, token string) (*domain.ROIMetrics, error)

	// Documents
	GetDocuments(ctx context.Context, token string) ([]map[string]interface{}, error)
}
