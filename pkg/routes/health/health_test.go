package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker bool

func (s stubChecker) Configured() bool { return bool(s) }

func doGet(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestChecker_Health(t *testing.T) {
	t.Run("both providers configured", func(t *testing.T) {
		e := echo.New()
		checker := NewChecker(stubChecker(true), stubChecker(true), "1.0.0")
		checker.RegisterRoutes(e)

		rec := doGet(e, "/api/v1/health")
		require.Equal(t, http.StatusOK, rec.Code)

		var status HealthStatus
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
		assert.Equal(t, "healthy", status.Status)
		assert.Equal(t, "1.0.0", status.Version)
		assert.Equal(t, "configured", status.Checks["google_maps"])
		assert.Equal(t, "configured", status.Checks["gemini_ai"])
	})

	t.Run("missing credential degrades the service", func(t *testing.T) {
		e := echo.New()
		checker := NewChecker(stubChecker(true), stubChecker(false), "1.0.0")
		checker.RegisterRoutes(e)

		rec := doGet(e, "/api/v1/health")
		require.Equal(t, http.StatusOK, rec.Code)

		var status HealthStatus
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
		assert.Equal(t, "degraded", status.Status)
		assert.Equal(t, "not configured", status.Checks["gemini_ai"])
	})
}

func TestChecker_LiveAndReady(t *testing.T) {
	e := echo.New()
	checker := NewChecker(stubChecker(true), stubChecker(true), "1.0.0")
	checker.RegisterRoutes(e)

	assert.Equal(t, http.StatusOK, doGet(e, "/api/v1/health/live").Code)
	assert.Equal(t, http.StatusServiceUnavailable, doGet(e, "/api/v1/health/ready").Code)

	checker.SetReady(true)
	assert.Equal(t, http.StatusOK, doGet(e, "/api/v1/health/ready").Code)

	checker.SetReady(false)
	assert.Equal(t, http.StatusServiceUnavailable, doGet(e, "/api/v1/health/ready").Code)
}
