package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/exam-marks-api/pkg/errors"
	"github.com/noah-isme/exam-marks-api/pkg/response"
)

// bindJSON decodes the request body and writes a validation error on failure.
func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		appErr := appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, message)
		appErr.Detail = err.Error()
		response.Error(c, appErr)
		return false
	}
	return true
}
