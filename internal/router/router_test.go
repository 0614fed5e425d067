package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-marks-api/internal/dto"
	"github.com/noah-isme/exam-marks-api/internal/handler"
	"github.com/noah-isme/exam-marks-api/internal/models"
	"github.com/noah-isme/exam-marks-api/internal/service"
	"github.com/noah-isme/exam-marks-api/pkg/config"
	"github.com/noah-isme/exam-marks-api/pkg/export"
)

type stubMarks struct{}

func (stubMarks) AddMark(ctx context.Context, req dto.MarkRequest) (*models.StudentMark, error) {
	return &models.StudentMark{ID: "id-1"}, nil
}

func (stubMarks) UpdateMark(ctx context.Context, id string, req dto.MarkRequest) (*models.StudentMark, error) {
	return &models.StudentMark{ID: id}, nil
}

func (stubMarks) GetMark(ctx context.Context, id string) (*models.StudentMark, error) {
	return &models.StudentMark{ID: id}, nil
}

func (stubMarks) ListAllMarks(ctx context.Context) ([]models.StudentMark, error) {
	return []models.StudentMark{}, nil
}

func (stubMarks) CheckMark(ctx context.Context, req dto.CheckMarkRequest) (*dto.CheckMarkResponse, error) {
	return &dto.CheckMarkResponse{Found: false, Data: []models.StudentMark{}}, nil
}

type stubHealth struct{}

func (stubHealth) Check(ctx context.Context) dto.HealthStatus {
	return dto.HealthStatus{Status: "ok", Database: "connected"}
}

func newTestEngine(t *testing.T) (*gin.Engine, *service.AuthService) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Env: config.EnvDevelopment, APIPrefix: "/api"}
	metrics := service.NewMetricsService()
	auth := service.NewAuthService(service.AuthConfig{Password: "1156", TokenSecret: "router-secret", Issuer: "exam-marks-api"}, metrics, zap.NewNop())
	browse := service.NewBrowseService(stubMarks{}, zap.NewNop())
	reports := service.NewReportService(stubMarks{}, exportHeader(), zap.NewNop(), nil, nil)

	handlers := &Handlers{
		Auth:    handler.NewAuthHandler(auth),
		Marks:   handler.NewMarkHandler(stubMarks{}, browse, reports),
		Lookup:  handler.NewLookupHandler(stubMarks{}, reports),
		Metrics: handler.NewMetricsHandler(metrics, stubHealth{}),
	}
	return Setup(cfg, zap.NewNop(), auth, metrics, handlers), auth
}

func do(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRouterPublicRoutes(t *testing.T) {
	r, _ := newTestEngine(t)

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/health", "", "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/exam-types", "", "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/user/check-mark", `{"registerNumber":"R-1"}`, "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPost, "/api/user/report.pdf", `{"registerNumber":"R-1"}`, "").Code)

	metrics := do(r, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), "http_requests_total")
}

func TestRouterAdminRoutesRequireToken(t *testing.T) {
	r, _ := newTestEngine(t)

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/api/admin/all-marks", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/api/admin/add-mark", `{}`, "forged").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/api/admin/login", `{"password":"nope"}`, "").Code)
}

func TestRouterAdminFlow(t *testing.T) {
	r, auth := newTestEngine(t)

	login, err := auth.Login(models.AdminLoginRequest{Password: "1156"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/admin/all-marks", "", login.Token).Code)
	assert.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/api/admin/add-mark", `{"name":"A"}`, login.Token).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPut, "/api/admin/update-mark/id-1", `{"name":"A"}`, login.Token).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/admin/browse?class=X", "", login.Token).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/admin/classes", "", login.Token).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/admin/export.csv", "", login.Token).Code)
}

func TestRouterCORSPreflight(t *testing.T) {
	r, _ := newTestEngine(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/admin/add-mark", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func exportHeader() export.ReportHeader {
	return export.ReportHeader{SchoolName: "School", Title: "Report"}
}
