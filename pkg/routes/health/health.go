package health

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"
)

// CredentialChecker reports whether a provider credential is present.
type CredentialChecker interface {
	Configured() bool
}

// Checker handles health check endpoints. The service has no backing store;
// health reports whether the two provider credentials are configured.
type Checker struct {
	placesClient CredentialChecker
	genaiClient  CredentialChecker
	version      string
	startTime    time.Time
	ready        atomic.Bool
}

// NewChecker creates a new health checker
func NewChecker(placesClient, genaiClient CredentialChecker, version string) *Checker {
	return &Checker{
		placesClient: placesClient,
		genaiClient:  genaiClient,
		version:      version,
		startTime:    time.Now(),
	}
}

// SetReady sets the readiness state
func (c *Checker) SetReady(ready bool) {
	c.ready.Store(ready)
}

// RegisterRoutes registers health check endpoints
func (c *Checker) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/health", c.Health)
	e.GET("/api/v1/health/live", c.Live)
	e.GET("/api/v1/health/ready", c.Ready)
}

// HealthStatus represents the health check response
type HealthStatus struct {
	Status     string            `json:"status"`
	Version    string            `json:"version"`
	Uptime     string            `json:"uptime"`
	Checks     map[string]string `json:"checks"`
	ReportedAt time.Time         `json:"reported_at"`
}

// Health returns the overall health status. An unconfigured credential makes
// the service degraded, not down: requests will fail at the provider call,
// but the process itself is serving.
func (c *Checker) Health(ctx echo.Context) error {
	status := &HealthStatus{
		Status:     "healthy",
		Version:    c.version,
		Uptime:     time.Since(c.startTime).Round(time.Second).String(),
		Checks:     make(map[string]string),
		ReportedAt: time.Now(),
	}

	status.Checks["google_maps"] = configuredState(c.placesClient)
	status.Checks["gemini_ai"] = configuredState(c.genaiClient)

	if status.Checks["google_maps"] != "configured" || status.Checks["gemini_ai"] != "configured" {
		status.Status = "degraded"
	}

	return ctx.JSON(http.StatusOK, status)
}

func configuredState(checker CredentialChecker) string {
	if checker != nil && checker.Configured() {
		return "configured"
	}
	return "not configured"
}

// Live returns the liveness status (is the service running)
func (c *Checker) Live(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "alive"})
}

// Ready returns the readiness status (is the service ready to accept traffic)
func (c *Checker) Ready(ctx echo.Context) error {
	if c.ready.Load() {
		return ctx.JSON(http.StatusOK, map[string]string{"status": "ready"})
	}
	return ctx.JSON(http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
}
