package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hospital-admin-api/internal/application/ports"
	"hospital-admin-api/internal/domain/audit"
)

const (
	CtxUserRole  = "userRole"
	CtxAdminID   = "adminID"
	CtxAdminName = "adminName"
)

func AuthMiddleware(tokens ports.TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "missing Authorization header"},
			)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token format"},
			)
			return
		}

		claims, err := tokens.ValidateToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token"},
			)
			return
		}

		c.Set(CtxUserRole, claims.Role)
		c.Set(CtxAdminID, claims.AdminID)
		c.Set(CtxAdminName, claims.Name)

		c.Next()
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxUserRole) != role {
			c.AbortWithStatusJSON(
				http.StatusForbidden,
				gin.H{"error": "insufficient permissions"},
			)
			return
		}

		c.Next()
	}
}

// Actor is the administrator the request acts on behalf of.
func Actor(c *gin.Context) audit.Actor {
	return audit.Actor{
		ID:   c.GetString(CtxAdminID),
		Name: c.GetString(CtxAdminName),
	}
}
