package mocks

import (
	"context"

	"github.com/gbelpiede/cx-ai-agent-prototype/internal/domain"
)

// MockGateway is a func-field mock of ports.BackendGateway. Unset fields
// return zero values so tests only wire what they exercise.
type MockGateway struct {
	SignupFunc                func(ctx context.Context, req domain.SignupRequest) (*domain.AuthResult, error)
	LoginFunc                 func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	CreateAgentFunc           func(ctx context.Context, token string, draft domain.AgentDraft) (*domain.Agent, error)
	GetAgentsFunc             func(ctx context.Context, token string) ([]domain.Agent, error)
	UpdateAgentFunc           func(ctx context.Context, token, agentID string, updates map[string]interface{}) (*domain.Agent, error)
	ActivateAgentFunc         func(ctx context.Context, token, agentID string) (*domain.Agent, error)
	AddEmployeeFunc           func(ctx context.Context, token, agentID string, emp domain.Employee) (*domain.Employee, error)
	GetEmployeesFunc          func(ctx context.Context, token, agentID string, page, limit int) (*domain.EmployeePage, error)
	CreateCheckInFunc         func(ctx context.Context, token string, req domain.CheckInRequest) (map[string]interface{}, error)
	GetCheckInFunc            func(ctx context.Context, token, checkinID string) (map[string]interface{}, error)
	SendMessageFunc           func(ctx context.Context, token, checkinID, userMessage, source string) (map[string]interface{}, error)
	GetDashboardSummaryFunc   func(ctx context.Context, token string) (*domain.DashboardSummary, error)
	GetSentimentBreakdownFunc func(ctx context.Context, token string) (*domain.SentimentBreakdown, error)
	GetROIMetricsFunc         func(ctx context.Context, token string) (*domain.ROIMetrics, error)
	GetDocumentsFunc          func(ctx context.Context, token string) ([]map[string]interface{}, error)
}

func (m *MockGateway) Signup(ctx context.Context, req domain.SignupRequest) (*domain.AuthResult, error) {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, req)
	}
	return &domain.AuthResult{}, nil
}

func (m *MockGateway) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return &domain.AuthResult{}, nil
}

func (m *MockGateway) CreateAgent(ctx context.Context, token string, draft domain.AgentDraft) (*domain.Agent, error) {
	if m.CreateAgentFunc != nil {
		return m.CreateAgentFunc(ctx, token, draft)
	}
	return &domain.Agent{}, nil
}

func (m *MockGateway) GetAgents(ctx context.Context, token string) ([]domain.Agent, error) {
	if m.GetAgentsFunc != nil {
		return m.GetAgentsFunc(ctx, token)
	}
	return []domain.Agent{}, nil
}

func (m *MockGateway) UpdateAgent(ctx context.Context, token, agentID string, updates map[string]interface{}) (*domain.Agent, error) {
	if m.UpdateAgentFunc != nil {
		return m.UpdateAgentFunc(ctx, token, agentID, updates)
	}
	return &domain.Agent{}, nil
}

func (m *MockGateway) ActivateAgent(ctx context.Context, token, agentID string) (*domain.Agent, error) {
	if m.ActivateAgentFunc != nil {
		return m.ActivateAgentFunc(ctx, token, agentID)
	}
	return &domain.Agent{}, nil
}

func (m *MockGateway) AddEmployee(ctx context.Context, token, agentID string, emp domain.Employee) (*domain.Employee, error) {
	if m.AddEmployeeFunc != nil {
		return m.AddEmployeeFunc(ctx, token, agentID, emp)
	}
	return &domain.Employee{}, nil
}

func (m *MockGateway) GetEmployees(ctx context.Context, token, agentID string, page, limit int) (*domain.EmployeePage, error) {
	if m.GetEmployeesFunc != nil {
		return m.GetEmployeesFunc(ctx, token, agentID, page, limit)
	}
	return &domain.EmployeePage{Employees: []domain.Employee{}}, nil
}

func (m *MockGateway) CreateCheckIn(ctx context.Context, token string, req domain.CheckInRequest) (map[string]interface{}, error) {
	if m.CreateCheckInFunc != nil {
		return m.CreateCheckInFunc(ctx, token, req)
	}
	return map[string]interface{}{}, nil
}

func (m *MockGateway) GetCheckIn(ctx context.Context, token, checkinID string) (map[string]interface{}, error) {
	if m.GetCheckInFunc != nil {
		return m.GetCheckInFunc(ctx, token, checkinID)
	}
	return map[string]interface{}{}, nil
}

func (m *MockGateway) SendMessage(ctx context.Context, token, checkinID, userMessage, source string) (map[string]interface{}, error) {
	if m.SendMessageFunc != nil {
		return m.SendMessageFunc(ctx, token, checkinID, userMessage, source)
	}
	return map[string]interface{}{}, nil
}

func (m *MockGateway) GetDashboardSummary(ctx context.Context, token string) (*domain.DashboardSummary, error) {
	if m.GetDashboardSummaryFunc != nil {
		return m.GetDashboardSummaryFunc(ctx, token)
	}
	return &domain.DashboardSummary{}, nil
}

func (m *MockGateway) GetSentimentBreakdown(ctx context.Context, token string) (*domain.SentimentBreakdown, error) {
	if m.GetSentimentBreakdownFunc != nil {
		return m.GetSentimentBreakdownFunc(ctx, token)
	}
	return &domain.SentimentBreakdown{}, nil
}

func (m *MockGateway) GetROIMetrics(ctx context.Context, token string) (*domain.ROIMetrics, error) {
	if m.GetROIMetricsFunc != nil {
		return m.GetROIMetricsFunc(ctx, token)
	}
	return &domain.ROIMetrics{}, nil
}

func (m *MockGateway) GetDocuments(ctx context.Context, token string) ([]map[string]interface{}, error) {
	if m.GetDocumentsFunc != nil {
		return m.GetDocumentsFunc(ctx, token)
	}
	return []map[string]interface{}{}, nil
}
