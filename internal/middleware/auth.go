package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"interviewiq-server/internal/dto"
	"interviewiq-server/internal/model"
	"interviewiq-server/internal/service"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// Auth validates the bearer token and stores the caller's identity on the
// gin context for downstream handlers.
func Auth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    "unauthorized",
				Message: "missing bearer token",
			})
			return
		}

		claims, err := authService.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    "unauthorized",
				Message: "invalid or expired token",
			})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)
		c.Next()
	}
}

// RequireAdmin rejects callers whose token does not carry the admin role.
// Must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextUserRole) != model.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
				Code:    "forbidden",
				Message: "admin access required",
			})
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated caller's id set by Auth.
func UserID(c *gin.Context) uint {
	return c.GetUint(ContextUserID)
}
