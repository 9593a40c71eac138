package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// DependencyChecker reports whether a backing dependency is reachable.
type DependencyChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler handles health check HTTP requests
type HealthHandler struct {
	db     DependencyChecker
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db DependencyChecker, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		logger: logger,
	}
}

// HealthResponse is the health check response body
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Uptime    string    `json:"uptime"`
}

// ReadinessResponse reports per-dependency readiness
type ReadinessResponse struct {
	Status    string                  `json:"status"`
	Timestamp time.Time               `json:"timestamp"`
	Service   string                  `json:"service"`
	Checks    map[string]HealthStatus `json:"checks"`
}

// HealthStatus is the state of a single dependency
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthCheck handles GET /v1/health
func (h *HealthHandler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Service:   "tandain-auth",
		Uptime:    time.Since(startTime).String(),
	})
}

// ReadinessCheck handles GET /v1/ready
func (h *HealthHandler) ReadinessCheck(c echo.Context) error {
	checks := make(map[string]HealthStatus)
	allHealthy := true

	if h.db != nil {
		if err := h.db.HealthCheck(c.Request().Context()); err != nil {
			h.logger.Error("database readiness check failed", "error", err)
			checks["database"] = HealthStatus{Status: "unhealthy", Message: err.Error()}
			allHealthy = false
		} else {
			checks["database"] = HealthStatus{Status: "healthy"}
		}
	}

	response := ReadinessResponse{
		Status:    "ready",
		Timestamp: time.Now(),
		Service:   "tandain-auth",
		Checks:    checks,
	}

	statusCode := http.StatusOK
	if !allHealthy {
		response.Status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	return c.JSON(statusCode, response)
}

// startTime is set when the service starts
var startTime = time.Now()
