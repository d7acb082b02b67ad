package health

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gbelpiede/cx-ai-agent-prototype/internal/ports"
)

// Status represents the health status
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
)

// CheckResult represents the result of a health check
type CheckResult struct {
	Name      string        `json:"name"`
	Status    Status        `json:"status"`
	Message   string        `json:"message,omitempty"`
	Duration  time.Duration `json:"duration_ms"`
	Timestamp time.Time     `json:"timestamp"`
}

// HealthResponse represents the overall health response
type HealthResponse struct {
	Status    Status                 `json:"status"`
	Version   string                 `json:"version,omitempty"`
	Uptime    string                 `json:"uptime,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

// ReadyResponse represents the readiness response
type ReadyResponse struct {
	Ready     bool                   `json:"ready"`
	Status    Status                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks"`
}

// Checker defines a health check function
type Checker func(ctx context.Context) CheckResult

// Service handles health checks
type Service struct {
	backendURL string
	httpClient *http.Client
	sessions   ports.SessionStore
	startTime  time.Time
	version    string
	checkers   map[string]Checker
	log        *zap.Logger
	mu         sync.RWMutex
}

// Config holds health service configuration
type Config struct {
	Version    string
	BackendURL string
	HTTPClient *http.Client
	Sessions   ports.SessionStore
}

// NewService creates a new health service
func NewService(config *Config, log *zap.Logger) *Service {
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}

	s := &Service{
		backendURL: config.BackendURL,
		httpClient: httpClient,
		sessions:   config.Sessions,
		startTime:  time.Now(),
		version:    config.Version,
		checkers:   make(map[string]Checker),
		log:        log,
	}

	if config.BackendURL != "" {
		s.RegisterChecker("backend", s.checkBackend)
	}
	if config.Sessions != nil {
		s.RegisterChecker("sessions", s.checkSessions)
	}

	return s
}

// RegisterChecker registers a custom health checker
func (s *Service) RegisterChecker(name string, checker Checker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkers[name] = checker
	s.log.Info("Registered health checker", zap.String("name", name))
}

// Health performs a basic liveness check
func (s *Service) Health(ctx context.Context) *HealthResponse {
	return &HealthResponse{
		Status:    StatusHealthy,
		Version:   s.version,
		Uptime:    time.Since(s.startTime).String(),
		Timestamp: time.Now(),
	}
}

// Ready performs a comprehensive readiness check
func (s *Service) Ready(ctx context.Context) *ReadyResponse {
	s.mu.RLock()
	checkers := make(map[string]Checker, len(s.checkers))
	for k, v := range s.checkers {
		checkers[k] = v
	}
	s.mu.RUnlock()

	// Run all checks concurrently
	results := make(map[string]CheckResult)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for name, checker := range checkers {
		wg.Add(1)
		go func(name string, checker Checker) {
			defer wg.Done()

			checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			result := checker(checkCtx)

			mu.Lock()
			results[name] = result
			mu.Unlock()
		}(name, checker)
	}

	wg.Wait()

	// Determine overall status
	overallStatus := StatusHealthy
	allReady := true

	for _, result := range results {
		if result.Status == StatusUnhealthy {
			overallStatus = StatusUnhealthy
			allReady = false
		} else if result.Status == StatusDegraded && overallStatus != StatusUnhealthy {
			overallStatus = StatusDegraded
		}
	}

	return &ReadyResponse{
		Ready:     allReady,
		Status:    overallStatus,
		Timestamp: time.Now(),
		Checks:    results,
	}
}

// checkBackend probes the upstream API with a plain GET. Any HTTP response
// counts as reachable; only transport failures mark the backend down.
func (s *Service) checkBackend(ctx context.Context) CheckResult {
	start := time.Now()
	result := CheckResult{
		Name:      "backend",
		Timestamp: time.Now(),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.backendURL, nil)
	if err != nil {
		result.Status = StatusUnhealthy
		result.Message = fmt.Sprintf("bad backend url: %v", err)
		result.Duration = time.Since(start)
		return result
	}

	resp, err := s.httpClient.Do(req)
	result.Duration = time.Since(start)

	if err != nil {
		result.Status = StatusUnhealthy
		result.Message = fmt.Sprintf("unreachable: %v", err)
		s.log.Warn("Backend health check failed", zap.Error(err))
		return result
	}
	resp.Body.Close()

	result.Status = StatusHealthy
	result.Message = fmt.Sprintf("reachable (status %d)", resp.StatusCode)
	return result
}

// checkSessions reports on the in-memory session store.
func (s *Service) checkSessions(ctx context.Context) CheckResult {
	start := time.Now()
	result := CheckResult{
		Name:      "sessions",
		Timestamp: time.Now(),
	}

	if s.sessions == nil {
		result.Status = StatusUnhealthy
		result.Message = "session store not configured"
		result.Duration = time.Since(start)
		return result
	}

	count := s.sessions.Count()
	result.Duration = time.Since(start)
	result.Status = StatusHealthy
	result.Message = fmt.Sprintf("%d active sessions", count)
	return result
}
