package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestHealthz(t *testing.T) {
	h := NewHealthHandler(testLogger(), nil)
	rec := httptest.NewRecorder()

	h.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "credit-scoring", resp.Service)
}

func TestReadyz(t *testing.T) {
	t.Run("all checks pass", func(t *testing.T) {
		h := NewHealthHandler(testLogger(), map[string]CheckFunc{
			"database": func(context.Context) error { return nil },
		})
		rec := httptest.NewRecorder()

		h.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp ReadinessResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ready", resp.Status)
		assert.Equal(t, "ok", resp.Checks["database"])
	})

	t.Run("failing check returns 503", func(t *testing.T) {
		h := NewHealthHandler(testLogger(), map[string]CheckFunc{
			"database": func(context.Context) error { return fmt.Errorf("connection refused") },
		})
		rec := httptest.NewRecorder()

		h.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var resp ReadinessResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "not ready", resp.Status)
		assert.Contains(t, resp.Checks["database"], "connection refused")
	})
}
