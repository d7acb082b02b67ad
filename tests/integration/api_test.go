package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/gbelpiede/cx-ai-agent-prototype/internal/adapter/backend"
	"github.com/gbelpiede/cx-ai-agent-prototype/internal/adapter/http/fiber/handlers"
	"github.com/gbelpiede/cx-ai-agent-prototype/internal/adapter/http/fiber/middleware"
	"github.com/gbelpiede/cx-ai-agent-prototype/internal/service/importer"
	"github.com/gbelpiede/cx-ai-agent-prototype/internal/service/session"
)

// fakeBackend stands in for the remote REST API. It hands out one access
// token and records what the dashboard sends upstream.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "correct" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "upstream-token"})
	})

	mux.HandleFunc("/auth/signup", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"access_token": "upstream-token"})
	})

	mux.HandleFunc("/agents", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer upstream-token" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "missing token"})
			return
		}
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(map[string]interface{}{
				"agents": []map[string]interface{}{
					{"id": "a1", "name": "Night Shift Bot", "status": "active", "tone_score": 0.7},
				},
			})
		case http.MethodPost:
			var draft map[string]interface{}
			json.NewDecoder(r.Body).Decode(&draft)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"id": "a2", "name": draft["name"], "status": "draft",
			})
		}
	})

	mux.HandleFunc("/dashboard/summary", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"check_ins_sent_30d":      412,
			"response_rate":           0.87,
			"churn_alerts_this_month": 3,
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// newDashboard wires the real gateway client, session layer and HTTP
// handlers against the fake backend.
func newDashboard(t *testing.T, backendURL string) *fiber.App {
	t.Helper()
	logger := zap.NewNop()

	gateway := backend.NewClient(&backend.Config{BaseURL: backendURL, Timeout: 5 * time.Second}, logger)

	store := session.NewStore(time.Hour, time.Hour, logger)
	t.Cleanup(store.Close)
	sessions := session.NewService(gateway, store, "integration-secret", time.Hour, logger)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(logger)})

	authHandler := handlers.NewAuthHandler(sessions, time.Hour, logger)
	app.Post("/api/v1/auth/login", authHandler.Login)
	app.Post("/api/v1/auth/signup", authHandler.Signup)

	protected := app.Group("/api/v1", middleware.SessionRequired(sessions))
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	dashboardHandler := handlers.NewDashboardHandler(gateway, logger)
	protected.Get("/dashboard", dashboardHandler.Home)

	agentHandler := handlers.NewAgentHandler(gateway, logger)
	protected.Get("/agents", agentHandler.List)
	protected.Post("/agents", agentHandler.Create)

	employeeHandler := handlers.NewEmployeeHandler(gateway, importer.NewService(gateway, logger), logger)
	protected.Get("/employees", employeeHandler.List)

	return app
}

func login(t *testing.T, app *fiber.App) string {
	t.Helper()

	body := bytes.NewBufferString(`{"email":"owner@acme.com","password":"correct"}`)
	req := httptest.NewRequest("POST", "/api/v1/auth/login", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Login request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		t.Fatalf("Login failed with %d: %s", resp.StatusCode, data)
	}

	var decoded map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&decoded)
	token, _ := decoded["session_token"].(string)
	if token == "" {
		t.Fatal("Login returned no session token")
	}
	return token
}

func TestLoginFlowEndToEnd(t *testing.T) {
	srv := fakeBackend(t)
	app := newDashboard(t, srv.URL)

	token := login(t, app)

	// The browser session token must not be the upstream credential.
	if token == "upstream-token" {
		t.Fatal("Dashboard handed the backend access token to the browser")
	}

	req := httptest.NewRequest("GET", "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Me request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200 from /auth/me, got %d", resp.StatusCode)
	}

	data, _ := io.ReadAll(resp.Body)
	if strings.Contains(string(data), "upstream-token") {
		t.Error("Backend access token leaked through /auth/me")
	}
}

func TestLoginRejectedEndToEnd(t *testing.T) {
	srv := fakeBackend(t)
	app := newDashboard(t, srv.URL)

	body := bytes.NewBufferString(`{"email":"owner@acme.com","password":"wrong"}`)
	req := httptest.NewRequest("POST", "/api/v1/auth/login", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Login request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", resp.StatusCode)
	}

	data, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(data), "invalid credentials") {
		t.Errorf("Expected backend detail surfaced, got %s", data)
	}
}

func TestAgentsEndToEnd(t *testing.T) {
	srv := fakeBackend(t)
	app := newDashboard(t, srv.URL)
	token := login(t, app)

	req := httptest.NewRequest("GET", "/api/v1/agents", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Agents request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var decoded struct {
		Agents []map[string]interface{} `json:"agents"`
		Cards  []map[string]interface{} `json:"cards"`
	}
	json.NewDecoder(resp.Body).Decode(&decoded)

	if len(decoded.Agents) != 1 || decoded.Agents[0]["id"] != "a1" {
		t.Errorf("Unexpected agents payload: %v", decoded.Agents)
	}
	if len(decoded.Cards) != 1 || decoded.Cards[0]["tone_pct"] != "70%" {
		t.Errorf("Unexpected card projection: %v", decoded.Cards)
	}
}

func TestCreateAgentEndToEnd(t *testing.T) {
	srv := fakeBackend(t)
	app := newDashboard(t, srv.URL)
	token := login(t, app)

	body := bytes.NewBufferString(`{"name":"Payroll Helper","tone_score":0.4}`)
	req := httptest.NewRequest("POST", "/api/v1/agents", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Create request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		data, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected 201, got %d: %s", resp.StatusCode, data)
	}

	var agent map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&agent)
	if agent["name"] != "Payroll Helper" || agent["status"] != "draft" {
		t.Errorf("Unexpected created agent: %v", agent)
	}
}

func TestDashboardEndToEnd(t *testing.T) {
	srv := fakeBackend(t)
	app := newDashboard(t, srv.URL)
	token := login(t, app)

	req := httptest.NewRequest("GET", "/api/v1/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Dashboard request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var decoded map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&decoded)

	summary, _ := decoded["summary"].(map[string]interface{})
	if summary["response_rate"] != "87%" {
		t.Errorf("Expected formatted response rate, got %v", summary["response_rate"])
	}
	if summary["check_ins_sent_30d"] != "412" {
		t.Errorf("Expected check-in count, got %v", summary["check_ins_sent_30d"])
	}
}

func TestEmployeesMissingEndpointEndToEnd(t *testing.T) {
	srv := fakeBackend(t)
	app := newDashboard(t, srv.URL)
	token := login(t, app)

	// The fake backend has no employees route, so the gateway sees a 404 and
	// must surface its fallback message through the 502.
	req := httptest.NewRequest("GET", fmt.Sprintf("/api/v1/employees?agent_id=%s", "a1"), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Employees request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("Expected 502, got %d", resp.StatusCode)
	}

	data, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(data), "Get employees error") {
		t.Errorf("Expected gateway error prefix, got %s", data)
	}
}
