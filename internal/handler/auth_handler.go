package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-marks-api/internal/models"
	appErrors "github.com/noah-isme/exam-marks-api/pkg/errors"
	"github.com/noah-isme/exam-marks-api/pkg/response"
)

type authService interface {
	Login(req models.AdminLoginRequest) (*models.AdminLoginResponse, error)
}

// AuthHandler wires the admin login endpoint to the auth service.
type AuthHandler struct {
	service authService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc authService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Login godoc
// @Summary Admin login
// @Description Exchange the admin password for a short-lived bearer token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.AdminLoginRequest true "Login payload"
// @Success 200 {object} models.AdminLoginResponse
// @Failure 401 {object} models.AdminLoginResponse
// @Router /admin/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.AdminLoginRequest
	// a malformed body is just a wrong password
	_ = c.ShouldBindJSON(&req)

	res, err := h.service.Login(req)
	if err != nil {
		appErr := appErrors.FromError(err)
		if appErr.Status == http.StatusUnauthorized {
			response.Raw(c, http.StatusUnauthorized, models.AdminLoginResponse{Success: false, Message: appErr.Message})
			return
		}
		response.Error(c, err)
		return
	}
	response.Raw(c, http.StatusOK, res)
}
