package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/gbelpiede/cx-ai-agent-prototype/internal/adapter/http/fiber/middleware"
	"github.com/gbelpiede/cx-ai-agent-prototype/internal/domain"
	"github.com/gbelpiede/cx-ai-agent-prototype/internal/mocks"
	"github.com/gbelpiede/cx-ai-agent-prototype/internal/service/importer"
)

// fakeSessions is a canned session service: any token resolves to the same
// session unless validateErr is set.
type fakeSessions struct {
	sess        *domain.Session
	validateErr error
	loggedOut   []string
}

func (f *fakeSessions) Signup(ctx context.Context, req domain.SignupRequest) (string, *domain.Session, error) {
	if f.validateErr != nil {
		return "", nil, f.validateErr
	}
	return "browser-token", f.sess, nil
}

func (f *fakeSessions) Login(ctx context.Context, email, password string) (string, *domain.Session, error) {
	if f.validateErr != nil {
		return "", nil, f.validateErr
	}
	return "browser-token", f.sess, nil
}

func (f *fakeSessions) Logout(ctx context.Context, sessionID string) {
	f.loggedOut = append(f.loggedOut, sessionID)
}

func (f *fakeSessions) Validate(ctx context.Context, sessionToken string) (*domain.Session, error) {
	if f.validateErr != nil {
		return nil, f.validateErr
	}
	return f.sess, nil
}

func (f *fakeSessions) UpdateProfile(ctx context.Context, sessionID, timezone, language string) (*domain.Session, error) {
	if f.validateErr != nil {
		return nil, f.validateErr
	}
	if timezone != "" {
		f.sess.Customer.Timezone = timezone
	}
	if language != "" {
		f.sess.Customer.Language = language
	}
	return f.sess, nil
}

func testSession() *domain.Session {
	return &domain.Session{
		ID:    "sess-1",
		Token: "backend-token",
		Customer: domain.CustomerProfile{
			Email:       "owner@acme.com",
			CompanyName: "Acme Staffing",
		},
		CreatedAt: time.Now(),
	}
}

func newTestApp(gateway *mocks.MockGateway, sessions *fakeSessions) *fiber.App {
	logger := zap.NewNop()
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(logger)})

	authHandler := NewAuthHandler(sessions, time.Hour, logger)
	app.Post("/api/v1/auth/signup", authHandler.Signup)
	app.Post("/api/v1/auth/login", authHandler.Login)

	protected := app.Group("/api/v1", middleware.SessionRequired(sessions))
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	dashboardHandler := NewDashboardHandler(gateway, logger)
	protected.Get("/dashboard", dashboardHandler.Home)
	protected.Get("/dashboard/analytics", dashboardHandler.Analytics)
	protected.Get("/dashboard/documents", dashboardHandler.Documents)

	agentHandler := NewAgentHandler(gateway, logger)
	protected.Get("/agents", agentHandler.List)
	protected.Post("/agents", agentHandler.Create)
	protected.Patch("/agents/:id", agentHandler.Update)
	protected.Post("/agents/:id/activate", agentHandler.Activate)

	employeeHandler := NewEmployeeHandler(gateway, importer.NewService(gateway, logger), logger)
	protected.Get("/employees", employeeHandler.List)
	protected.Post("/employees", employeeHandler.Add)
	protected.Post("/employees/import", employeeHandler.Import)

	checkInHandler := NewCheckInHandler(gateway, logger)
	protected.Post("/checkins", checkInHandler.Create)
	protected.Get("/checkins/:id", checkInHandler.Get)
	protected.Post("/checkins/:id/messages", checkInHandler.SendMessage)

	settingsHandler := NewSettingsHandler(sessions, logger)
	protected.Get("/settings", settingsHandler.Get)
	protected.Patch("/settings", settingsHandler.Update)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, authed bool) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer browser-token")
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	var decoded map[string]interface{}
	data, _ := io.ReadAll(resp.Body)
	if len(data) > 0 {
		json.Unmarshal(data, &decoded)
	}
	return resp.StatusCode, decoded
}

func TestAuth_LoginValidation(t *testing.T) {
	app := newTestApp(&mocks.MockGateway{}, &fakeSessions{sess: testSession()})

	status, body := doJSON(t, app, "POST", "/api/v1/auth/login", map[string]string{"email": "a@b.com"}, false)
	if status != fiber.StatusBadRequest {
		t.Errorf("Expected 400 for missing password, got %d", status)
	}
	if body["error"] == "" {
		t.Error("Expected error message")
	}
}

func TestAuth_LoginSuccess(t *testing.T) {
	app := newTestApp(&mocks.MockGateway{}, &fakeSessions{sess: testSession()})

	status, body := doJSON(t, app, "POST", "/api/v1/auth/login",
		map[string]string{"email": "a@b.com", "password": "pw"}, false)
	if status != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d", status)
	}
	if body["session_token"] != "browser-token" {
		t.Errorf("Expected session token in response, got %v", body["session_token"])
	}

	// The backend access token must never appear in the response.
	raw, _ := json.Marshal(body)
	if strings.Contains(string(raw), "backend-token") {
		t.Error("Backend access token leaked into the login response")
	}
}

func TestAuth_LoginRejected(t *testing.T) {
	sessions := &fakeSessions{validateErr: errors.New("Login error: Login failed")}
	app := newTestApp(&mocks.MockGateway{}, sessions)

	status, body := doJSON(t, app, "POST", "/api/v1/auth/login",
		map[string]string{"email": "a@b.com", "password": "bad"}, false)
	if status != fiber.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", status)
	}
	if !strings.Contains(body["error"].(string), "Login error") {
		t.Errorf("Expected backend error surfaced, got %v", body["error"])
	}
}

func TestAuth_SignupValidation(t *testing.T) {
	app := newTestApp(&mocks.MockGateway{}, &fakeSessions{sess: testSession()})

	status, _ := doJSON(t, app, "POST", "/api/v1/auth/signup",
		map[string]string{"email": "a@b.com", "password": "pw"}, false)
	if status != fiber.StatusBadRequest {
		t.Errorf("Expected 400 for missing company name, got %d", status)
	}
}

func TestAuth_ProtectedRoutesRequireSession(t *testing.T) {
	sessions := &fakeSessions{sess: testSession()}
	app := newTestApp(&mocks.MockGateway{}, sessions)

	req := httptest.NewRequest("GET", "/api/v1/dashboard", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("Expected 401 without session, got %d", resp.StatusCode)
	}
}

func TestAuth_Logout(t *testing.T) {
	sessions := &fakeSessions{sess: testSession()}
	app := newTestApp(&mocks.MockGateway{}, sessions)

	status, _ := doJSON(t, app, "POST", "/api/v1/auth/logout", nil, true)
	if status != fiber.StatusOK {
		t.Errorf("Expected 200, got %d", status)
	}
	if len(sessions.loggedOut) != 1 || sessions.loggedOut[0] != "sess-1" {
		t.Errorf("Expected session sess-1 destroyed, got %v", sessions.loggedOut)
	}
}

func TestAgents_ListGatewayFailure(t *testing.T) {
	gateway := &mocks.MockGateway{
		GetAgentsFunc: func(ctx context.Context, token string) ([]domain.Agent, error) {
			return nil, errors.New("Get agents error: Failed to get agents")
		},
	}
	app := newTestApp(gateway, &fakeSessions{sess: testSession()})

	status, body := doJSON(t, app, "GET", "/api/v1/agents", nil, true)
	if status != fiber.StatusBadGateway {
		t.Errorf("Expected 502, got %d", status)
	}
	if !strings.Contains(body["error"].(string), "Get agents error") {
		t.Errorf("Expected gateway error surfaced, got %v", body["error"])
	}
}

func TestAgents_CreateRequiresName(t *testing.T) {
	app := newTestApp(&mocks.MockGateway{}, &fakeSessions{sess: testSession()})

	status, _ := doJSON(t, app, "POST", "/api/v1/agents", map[string]string{"description": "x"}, true)
	if status != fiber.StatusBadRequest {
		t.Errorf("Expected 400 for missing name, got %d", status)
	}
}

func TestAgents_CreateForwardsBackendToken(t *testing.T) {
	var gotToken string
	gateway := &mocks.MockGateway{
		CreateAgentFunc: func(ctx context.Context, token string, draft domain.AgentDraft) (*domain.Agent, error) {
			gotToken = token
			return &domain.Agent{ID: "a1", Name: draft.Name, Status: domain.AgentStatusDraft}, nil
		},
	}
	app := newTestApp(gateway, &fakeSessions{sess: testSession()})

	status, body := doJSON(t, app, "POST", "/api/v1/agents", map[string]string{"name": "Bot"}, true)
	if status != fiber.StatusCreated {
		t.Fatalf("Expected 201, got %d", status)
	}
	if gotToken != "backend-token" {
		t.Errorf("Expected backend token forwarded, got %q", gotToken)
	}
	if body["status"] != "draft" {
		t.Errorf("Expected draft status, got %v", body["status"])
	}
}

func TestAgents_Activate(t *testing.T) {
	gateway := &mocks.MockGateway{
		ActivateAgentFunc: func(ctx context.Context, token, agentID string) (*domain.Agent, error) {
			return &domain.Agent{ID: agentID, Status: domain.AgentStatusActive}, nil
		},
	}
	app := newTestApp(gateway, &fakeSessions{sess: testSession()})

	status, body := doJSON(t, app, "POST", "/api/v1/agents/a1/activate", nil, true)
	if status != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d", status)
	}
	if body["status"] != "active" {
		t.Errorf("Expected active status, got %v", body["status"])
	}
}

func TestEmployees_ListRequiresAgent(t *testing.T) {
	app := newTestApp(&mocks.MockGateway{}, &fakeSessions{sess: testSession()})

	status, _ := doJSON(t, app, "GET", "/api/v1/employees", nil, true)
	if status != fiber.StatusBadRequest {
		t.Errorf("Expected 400 without agent_id, got %d", status)
	}
}

func TestEmployees_ListPassesPagination(t *testing.T) {
	var gotPage, gotLimit int
	gateway := &mocks.MockGateway{
		GetEmployeesFunc: func(ctx context.Context, token, agentID string, page, limit int) (*domain.EmployeePage, error) {
			gotPage, gotLimit = page, limit
			return &domain.EmployeePage{Employees: []domain.Employee{}, Total: 0}, nil
		},
	}
	app := newTestApp(gateway, &fakeSessions{sess: testSession()})

	status, _ := doJSON(t, app, "GET", "/api/v1/employees?agent_id=a1&page=3&limit=10", nil, true)
	if status != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d", status)
	}
	if gotPage != 3 || gotLimit != 10 {
		t.Errorf("Expected page=3 limit=10, got %d/%d", gotPage, gotLimit)
	}
}

func TestEmployees_AddValidation(t *testing.T) {
	app := newTestApp(&mocks.MockGateway{}, &fakeSessions{sess: testSession()})

	status, _ := doJSON(t, app, "POST", "/api/v1/employees?agent_id=a1",
		map[string]string{"first_name": "Maria"}, true)
	if status != fiber.StatusBadRequest {
		t.Errorf("Expected 400 for incomplete employee, got %d", status)
	}
}

func TestEmployees_ImportCSV(t *testing.T) {
	added := 0
	gateway := &mocks.MockGateway{
		AddEmployeeFunc: func(ctx context.Context, token, agentID string, emp domain.Employee) (*domain.Employee, error) {
			added++
			return &emp, nil
		},
	}
	app := newTestApp(gateway, &fakeSessions{sess: testSession()})

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, _ := writer.CreateFormFile("file", "roster.csv")
	part.Write([]byte("first_name,last_name,phone\nMaria,Lopez,+15551230001\nJames,Chen,+15551230002\n"))
	writer.Close()

	req := httptest.NewRequest("POST", "/api/v1/employees/import?agent_id=a1", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer browser-token")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}
	if added != 2 {
		t.Errorf("Expected 2 employees added, got %d", added)
	}

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	if result["imported"] != float64(2) {
		t.Errorf("Expected imported=2, got %v", result["imported"])
	}
}

func TestCheckIns_CreateDefaultsFlow(t *testing.T) {
	var gotFlow string
	gateway := &mocks.MockGateway{
		CreateCheckInFunc: func(ctx context.Context, token string, req domain.CheckInRequest) (map[string]interface{}, error) {
			gotFlow = req.FlowName
			return map[string]interface{}{"id": "c1", "status": "in_progress"}, nil
		},
	}
	app := newTestApp(gateway, &fakeSessions{sess: testSession()})

	status, body := doJSON(t, app, "POST", "/api/v1/checkins",
		map[string]string{"agent_id": "a1", "employee_id": "e1"}, true)
	if status != fiber.StatusCreated {
		t.Fatalf("Expected 201, got %d", status)
	}
	if gotFlow != domain.FlowRetentionCheckin {
		t.Errorf("Expected default flow, got %q", gotFlow)
	}
	if body["id"] != "c1" {
		t.Errorf("Expected backend payload relayed verbatim, got %v", body)
	}
}

func TestCheckIns_SendMessageRequiresText(t *testing.T) {
	app := newTestApp(&mocks.MockGateway{}, &fakeSessions{sess: testSession()})

	status, _ := doJSON(t, app, "POST", "/api/v1/checkins/c1/messages",
		map[string]string{"source": "web"}, true)
	if status != fiber.StatusBadRequest {
		t.Errorf("Expected 400 for empty message, got %d", status)
	}
}

func TestDashboard_HomeDegradesToNA(t *testing.T) {
	gateway := &mocks.MockGateway{
		GetDashboardSummaryFunc: func(ctx context.Context, token string) (*domain.DashboardSummary, error) {
			return nil, errors.New("Get summary error: Failed to get summary")
		},
		GetAgentsFunc: func(ctx context.Context, token string) ([]domain.Agent, error) {
			return []domain.Agent{{ID: "a1", Name: "Bot", Status: domain.AgentStatusActive}}, nil
		},
	}
	app := newTestApp(gateway, &fakeSessions{sess: testSession()})

	status, body := doJSON(t, app, "GET", "/api/v1/dashboard", nil, true)
	if status != fiber.StatusOK {
		t.Fatalf("Expected 200 despite summary failure, got %d", status)
	}

	summary, ok := body["summary"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected summary block, got %v", body)
	}
	if summary["response_rate"] != "N/A" {
		t.Errorf("Expected N/A response rate, got %v", summary["response_rate"])
	}
	if body["company_name"] != "Acme Staffing" {
		t.Errorf("Expected company name from session, got %v", body["company_name"])
	}
}

func TestDashboard_AnalyticsFormatsROI(t *testing.T) {
	gateway := &mocks.MockGateway{
		GetSentimentBreakdownFunc: func(ctx context.Context, token string) (*domain.SentimentBreakdown, error) {
			return &domain.SentimentBreakdown{
				Positive: domain.SentimentBucket{Count: 40},
				Neutral:  domain.SentimentBucket{Count: 10},
				Negative: domain.SentimentBucket{Count: 5},
			}, nil
		},
		GetROIMetricsFunc: func(ctx context.Context, token string) (*domain.ROIMetrics, error) {
			return &domain.ROIMetrics{TimeSavedHours: 42.5, ResponseRateImprovementPct: 23, EstimatedSavings: 12500}, nil
		},
	}
	app := newTestApp(gateway, &fakeSessions{sess: testSession()})

	status, body := doJSON(t, app, "GET", "/api/v1/dashboard/analytics", nil, true)
	if status != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d", status)
	}

	roi, ok := body["roi"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected roi block, got %v", body)
	}
	if roi["estimated_savings"] != "$12,500" {
		t.Errorf("Expected formatted savings, got %v", roi["estimated_savings"])
	}
}

func TestSettings_Update(t *testing.T) {
	sessions := &fakeSessions{sess: testSession()}
	app := newTestApp(&mocks.MockGateway{}, sessions)

	status, body := doJSON(t, app, "PATCH", "/api/v1/settings",
		map[string]string{"timezone": "America/Chicago"}, true)
	if status != fiber.StatusOK {
		t.Fatalf("Expected 200, got %d", status)
	}
	if body["timezone"] != "America/Chicago" {
		t.Errorf("Expected updated timezone, got %v", body["timezone"])
	}

	status, _ = doJSON(t, app, "PATCH", "/api/v1/settings", map[string]string{}, true)
	if status != fiber.StatusBadRequest {
		t.Errorf("Expected 400 for empty update, got %d", status)
	}
}
