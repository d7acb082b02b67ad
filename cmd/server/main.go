package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/gbelpiede/cx-ai-agent-prototype/internal/adapter/backend"
	"github.com/gbelpiede/cx-ai-agent-prototype/internal/adapter/http/fiber/handlers"
	"github.com/gbelpiede/cx-ai-agent-prototype/internal/adapter/http/fiber/middleware"
	"github.com/gbelpiede/cx-ai-agent-prototype/internal/adapter/vault"
	wsAdapter "github.com/gbelpiede/cx-ai-agent-prototype/internal/adapter/websocket"
	"github.com/gbelpiede/cx-ai-agent-prototype/internal/observability/telemetry"
	"github.com/gbelpiede/cx-ai-agent-prototype/internal/service/health"
	"github.com/gbelpiede/cx-ai-agent-prototype/internal/service/importer"
	"github.com/gbelpiede/cx-ai-agent-prototype/internal/service/session"
	"github.com/gbelpiede/cx-ai-agent-prototype/pkg/config"
)

const (
	serviceName    = "cxai-dashboard"
	serviceVersion = "v1.0.0"
)

func main() {
	// 1. Initialize Logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	logger.Info("Starting CX AI dashboard",
		zap.String("service", serviceName),
		zap.String("version", serviceVersion),
	)

	// 2. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// 3. Initialize OpenTelemetry (Distributed Tracing)
	tracerProvider, err := telemetry.InitTracer(serviceName, cfg.OpenTelemetry.Jaeger.Endpoint)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			logger.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// 4. Resolve the session signing key. Vault wins when configured;
	// otherwise the key comes from SESSION_SECRET.
	sessionSecret := cfg.Session.Secret
	if cfg.Vault.Address != "" {
		secretManager, err := vault.NewSecretManager(cfg.Vault.Address, cfg.Vault.Token)
		if err != nil {
			logger.Fatal("Failed to connect to Vault", zap.Error(err))
		}
		key, err := secretManager.GetSessionSigningKey()
		if err != nil {
			logger.Fatal("Failed to read session signing key from Vault", zap.Error(err))
		}
		sessionSecret = key
		logger.Info("Session signing key loaded from Vault")
	}
	if sessionSecret == "" {
		logger.Fatal("Session secret is not configured; set SESSION_SECRET or Vault")
	}

	// 5. Initialize the API Gateway Client
	gateway := backend.NewClient(&backend.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
	}, logger)

	// 6. Initialize the Session Layer
	sessionStore := session.NewStore(cfg.Session.TTL, cfg.Session.CleanupInterval, logger)
	defer sessionStore.Close()

	sessionService := session.NewService(gateway, sessionStore, sessionSecret, cfg.Session.TTL, logger)

	// 7. Initialize Services
	importService := importer.NewService(gateway, logger)

	healthService := health.NewService(&health.Config{
		Version:    serviceVersion,
		BackendURL: cfg.Backend.BaseURL,
		Sessions:   sessionStore,
	}, logger)

	// 8. Initialize Demo Stream Handler
	demoStreamHandler := wsAdapter.NewDemoStreamHandler(cfg.Demo.MessageDelay, logger)

	// 9. Initialize Fiber HTTP Server
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		ServerHeader:          serviceName,
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	// Global Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(middleware.NewCORS(cfg.CORS))

	// Health Check Endpoints
	healthHandler := health.NewFiberHandler(healthService)
	healthHandler.RegisterRoutes(app)

	// Metrics endpoint for Prometheus
	if cfg.Prometheus.Enabled {
		app.Get(cfg.Prometheus.Path, func(c *fiber.Ctx) error {
			handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
			handler(c.Context())
			return nil
		})
	}

	// API v1 Routes
	v1 := app.Group("/api/v1")

	// Auth routes (public)
	authHandler := handlers.NewAuthHandler(sessionService, cfg.Session.TTL, logger)
	v1.Post("/auth/signup", authHandler.Signup)
	v1.Post("/auth/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("", middleware.SessionRequired(sessionService))
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	// Dashboard routes
	dashboardHandler := handlers.NewDashboardHandler(gateway, logger)
	protected.Get("/dashboard", dashboardHandler.Home)
	protected.Get("/dashboard/analytics", dashboardHandler.Analytics)
	protected.Get("/dashboard/documents", dashboardHandler.Documents)

	// Agent routes
	agentHandler := handlers.NewAgentHandler(gateway, logger)
	protected.Get("/agents", agentHandler.List)
	protected.Post("/agents", agentHandler.Create)
	protected.Patch("/agents/:id", agentHandler.Update)
	protected.Post("/agents/:id/activate", agentHandler.Activate)

	// Employee routes
	employeeHandler := handlers.NewEmployeeHandler(gateway, importService, logger)
	protected.Get("/employees", employeeHandler.List)
	protected.Post("/employees", employeeHandler.Add)
	protected.Post("/employees/import", employeeHandler.Import)

	// Check-in routes
	checkInHandler := handlers.NewCheckInHandler(gateway, logger)
	protected.Post("/checkins", checkInHandler.Create)
	protected.Get("/checkins/:id", checkInHandler.Get)
	protected.Post("/checkins/:id/messages", checkInHandler.SendMessage)

	// Settings routes
	settingsHandler := handlers.NewSettingsHandler(sessionService, logger)
	protected.Get("/settings", settingsHandler.Get)
	protected.Patch("/settings", settingsHandler.Update)

	// Demo replay WebSocket (public, no account needed)
	wsAdapter.SetupDemoRoutes(app, demoStreamHandler)

	// 10. Start HTTP Server
	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// 11. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}
