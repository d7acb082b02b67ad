package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Gateway metrics
	BackendRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cxai_backend_requests_total",
		Help: "Backend API requests by operation and outcome",
	}, []string{"operation", "status"})

	BackendRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cxai_backend_request_duration_seconds",
		Help:    "Backend API request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// Session metrics
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cxai_active_sessions",
		Help: "Dashboard sessions currently held in memory",
	})

	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cxai_logins_total",
		Help: "Login and signup attempts by flow and outcome",
	}, []string{"flow", "status"})

	// Import metrics
	EmployeesImportedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cxai_employees_imported_total",
		Help: "Employees created through CSV bulk import",
	})

	// Demo metrics
	DemoStreamsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cxai_demo_streams_active",
		Help: "Open demo replay websocket streams",
	})
)
