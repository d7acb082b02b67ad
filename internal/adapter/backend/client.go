package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/gbelpiede/cx-ai-agent-prototype/internal/domain"
	"github.com/gbelpiede/cx-ai-agent-prototype/internal/observability/telemetry"
	"github.com/gbelpiede/cx-ai-agent-prototype/internal/ports"
)

// DefaultBaseURL is the production backend, overridable via configuration.
const DefaultBaseURL = "https://cxai-backend-prod-6e43ca701a40.herokuapp.com/v1"

const (
	defaultPage  = 1
	defaultLimit = 50
)

// Config holds gateway client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseURL: DefaultBaseURL,
		Timeout: 30 * time.Second,
	}
}

// Client is the stateless API gateway client: one method per backend
// endpoint, one HTTP round trip per call. There are no retries, no circuit
// breaking and no local caching; a failed call is simply reported and the
// user repeats the action.
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *zap.Logger
	tracer     trace.Tracer
}

// NewClient creates a gateway client.
func NewClient(config *Config, log *zap.Logger) ports.BackendGateway {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		log:     log,
		tracer:  otel.Tracer("backend-gateway"),
	}
}

// call describes one round trip. op is the human error prefix ("Create
// agent"); fallback is the message used when the backend sends no detail
// field.
type call struct {
	op       string
	fallback string
	method   string
	path     string
	token    string
	query    url.Values
	body     interface{}
}

// ============ AUTH ============

func (c *Client) Signup(ctx context.Context, req domain.SignupRequest) (*domain.AuthResult, error) {
	var out domain.AuthResult
	err := c.do(ctx, call{
		op:       "Signup",
		fallback: "Signup failed",
		method:   http.MethodPost,
		path:     "/auth/signup",
		body:     req,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	var out domain.AuthResult
	err := c.do(ctx, call{
		op:       "Login",
		fallback: "Login failed",
		method:   http.MethodPost,
		path:     "/auth/login",
		body: map[string]string{
			"email":    email,
			"password": password,
		},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ============ AGENTS ============

func (c *Client) CreateAgent(ctx context.Context, token string, draft domain.AgentDraft) (*domain.Agent, error) {
	var out domain.Agent
	err := c.do(ctx, call{
		op:       "Create agent",
		fallback: "Agent creation failed",
		method:   http.MethodPost,
		path:     "/agents",
		token:    token,
		body:     draft,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetAgents(ctx context.Context, token string) ([]domain.Agent, error) {
	var out struct {
		Agents []domain.Agent `json:"agents"`
	}
	err := c.do(ctx, call{
		op:       "Get agents",
		fallback: "Failed to get agents",
		method:   http.MethodGet,
		path:     "/agents",
		token:    token,
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.Agents == nil {
		return []domain.Agent{}, nil
	}
	return out.Agents, nil
}

func (c *Client) UpdateAgent(ctx context.Context, token, agentID string, updates map[string]interface{}) (*domain.Agent, error) {
	var out domain.Agent
	err := c.do(ctx, call{
		op:       "Update agent",
		fallback: "Agent update failed",
		method:   http.MethodPatch,
		path:     "/agents/" + url.PathEscape(agentID),
		token:    token,
		body:     updates,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ActivateAgent(ctx context.Context, token, agentID string) (*domain.Agent, error) {
	var out domain.Agent
	err := c.do(ctx, call{
		op:       "Activate agent",
		fallback: "Agent activation failed",
		method:   http.MethodPost,
		path:     "/agents/" + url.PathEscape(agentID) + "/activate",
		token:    token,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ============ EMPLOYEES ============

func (c *Client) AddEmployee(ctx context.Context, token, agentID string, emp domain.Employee) (*domain.Employee, error) {
	query := url.Values{}
	query.Set("agent_id", agentID)

	var out domain.Employee
	err := c.do(ctx, call{
		op:       "Add employee",
		fallback: "Employee creation failed",
		method:   http.MethodPost,
		path:     "/employees",
		token:    token,
		query:    query,
		body:     emp,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetEmployees(ctx context.Context, token, agentID string, page, limit int) (*domain.EmployeePage, error) {
	if page <= 0 {
		page = defaultPage
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	query := url.Values{}
	query.Set("agent_id", agentID)
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var out domain.EmployeePage
	err := c.do(ctx, call{
		op:       "Get employees",
		fallback: "Failed to get employees",
		method:   http.MethodGet,
		path:     "/employees",
		token:    token,
		query:    query,
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.Employees == nil {
		out.Employees = []domain.Employee{}
	}
	return &out, nil
}

// ============ CHECK-INS ============

func (c *Client) CreateCheckIn(ctx context.Context, token string, req domain.CheckInRequest) (map[string]interface{}, error) {
	var out map[string]interface{}
	err := c.do(ctx, call{
		op:       "Create check-in",
		fallback: "Check-in creation failed",
		method:   http.MethodPost,
		path:     "/check-ins",
		token:    token,
		body:     req,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCheckIn(ctx context.Context, token, checkinID string) (map[string]interface{}, error) {
	var out map[string]interface{}
	err := c.do(ctx, call{
		op:       "Get check-in",
		fallback: "Failed to get check-in",
		method:   http.MethodGet,
		path:     "/check-ins/" + url.PathEscape(checkinID),
		token:    token,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SendMessage(ctx context.Context, token, checkinID, userMessage, source string) (map[string]interface{}, error) {
	if source == "" {
		source = domain.DefaultMessageSource
	}

	var out map[string]interface{}
	err := c.do(ctx, call{
		op:       "Send message",
		fallback: "Message send failed",
		method:   http.MethodPost,
		path:     "/check-ins/" + url.PathEscape(checkinID) + "/message",
		token:    token,
		body: domain.MessageRequest{
			UserMessage: userMessage,
			Source:      source,
		},
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ============ ANALYTICS ============

func (c *Client) GetDashboardSummary(ctx context.Context, token string) (*domain.DashboardSummary, error) {
	var out domain.DashboardSummary
	err := c.do(ctx, call{
		op:       "Get summary",
		fallback: "Failed to get summary",
		method:   http.MethodGet,
		path:     "/dashboard/summary",
		token:    token,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetSentimentBreakdown(ctx context.Context, token string) (*domain.SentimentBreakdown, error) {
	var out domain.SentimentBreakdown
	err := c.do(ctx, call{
		op:       "Get sentiment",
		fallback: "Failed to get sentiment",
		method:   http.MethodGet,
		path:     "/dashboard/sentiment",
		token:    token,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetROIMetrics(ctx context.Context, token string) (*domain.ROIMetrics, error) {
	var out domain.ROIMetrics
	err := c.do(ctx, call{
		op:       "Get ROI",
		fallback: "Failed to get ROI",
		method:   http.MethodGet,
		path:     "/dashboard/roi",
		token:    token,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ============ DOCUMENTS ============

func (c *Client) GetDocuments(ctx context.Context, token string) ([]map[string]interface{}, error) {
	var out struct {
		Documents []map[string]interface{} `json:"documents"`
	}
	err := c.do(ctx, call{
		op:       "Get documents",
		fallback: "Failed to get documents",
		method:   http.MethodGet,
		path:     "/documents",
		token:    token,
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.Documents == nil {
		return []map[string]interface{}{}, nil
	}
	return out.Documents, nil
}

// do performs the round trip and funnels every failure into
// *RequestFailedError. Instrumentation never alters the error channel.
func (c *Client) do(ctx context.Context, req call, out interface{}) error {
	opKey := metricKey(req.op)
	start := time.Now()
	status := "transport_error"
	defer func() {
		telemetry.BackendRequestsTotal.WithLabelValues(opKey, status).Inc()
		telemetry.BackendRequestDuration.WithLabelValues(opKey).Observe(time.Since(start).Seconds())
	}()

	ctx, span := c.tracer.Start(ctx, opKey)
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", req.method),
		attribute.String("backend.operation", opKey),
	)

	endpoint := c.baseURL + req.path
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}

	var bodyReader io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return c.fail(req, err)
		}
		bodyReader = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, bodyReader)
	if err != nil {
		return c.fail(req, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Warn("Backend request failed",
			zap.String("operation", opKey),
			zap.Error(err),
		)
		return c.fail(req, err)
	}
	defer resp.Body.Close()

	status = strconv.Itoa(resp.StatusCode)
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		message := req.fallback
		var errBody struct {
			Detail string `json:"detail"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr == nil && errBody.Detail != "" {
			message = errBody.Detail
		}

		c.log.Warn("Backend returned error status",
			zap.String("operation", opKey),
			zap.Int("status", resp.StatusCode),
			zap.String("message", message),
		)
		return &RequestFailedError{Op: req.op, Message: message}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		status = "decode_error"
		return c.fail(req, err)
	}

	return nil
}

// fail wraps a transport-level fault (dial, timeout, marshal, malformed
// JSON) into the same error channel as backend-reported failures, keeping
// the underlying message intact behind the operation prefix.
func (c *Client) fail(req call, err error) *RequestFailedError {
	return &RequestFailedError{Op: req.op, Message: err.Error(), Err: err}
}

func metricKey(op string) string {
	return strings.ReplaceAll(strings.ToLower(op), " ", "_")
}
