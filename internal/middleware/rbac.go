package middleware

import (
	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/exam-marks-api/pkg/errors"
	"github.com/noah-isme/exam-marks-api/pkg/response"
)

// RequireScope allows the request only when the admin token carries one of the scopes.
func RequireScope(scopes ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(scopes))
	for _, s := range scopes {
		allowed[s] = struct{}{}
	}
	return func(c *gin.Context) {
		claims, ok := AdminClaims(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if _, ok := allowed[claims.Scope]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
