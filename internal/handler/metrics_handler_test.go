package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-marks-api/internal/dto"
	"github.com/noah-isme/exam-marks-api/internal/service"
)

type healthCheckerMock struct {
	status dto.HealthStatus
}

func (m healthCheckerMock) Check(ctx context.Context) dto.HealthStatus {
	return m.status
}

func TestMetricsHandlerHealth(t *testing.T) {
	h := NewMetricsHandler(nil, healthCheckerMock{status: dto.HealthStatus{Status: "ok", Database: "disconnected", Timestamp: "2024-01-01T00:00:00.000Z"}})
	c, w := newTestContext(http.MethodGet, "/api/health", nil)
	h.Health(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","database":"disconnected","timestamp":"2024-01-01T00:00:00.000Z"}`, w.Body.String())
}

func TestMetricsHandlerPrometheus(t *testing.T) {
	metrics := service.NewMetricsService()
	metrics.RecordAdminLogin(true)
	h := NewMetricsHandler(metrics, nil)

	c, w := newTestContext(http.MethodGet, "/metrics", nil)
	h.Prometheus(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin_logins_total")

	c, w = newTestContext(http.MethodGet, "/metrics", nil)
	NewMetricsHandler(nil, nil).Prometheus(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
