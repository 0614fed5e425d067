package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-marks-api/internal/dto"
	"github.com/noah-isme/exam-marks-api/internal/service"
	"github.com/noah-isme/exam-marks-api/pkg/response"
)

type healthChecker interface {
	Check(ctx context.Context) dto.HealthStatus
}

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
	health  healthChecker
}

// NewMetricsHandler constructs a metrics handler.
func NewMetricsHandler(metrics *service.MetricsService, health healthChecker) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, health: health}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.AbortWithStatus(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health godoc
// @Summary Liveness probe
// @Description Always 200; database reports connected or disconnected
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthStatus
// @Router /health [get]
func (h *MetricsHandler) Health(c *gin.Context) {
	if h.health == nil {
		response.Raw(c, http.StatusOK, gin.H{"status": "ok"})
		return
	}
	response.Raw(c, http.StatusOK, h.health.Check(c.Request.Context()))
}
