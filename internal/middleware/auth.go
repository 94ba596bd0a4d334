package middleware

import (
	"net/http"
	"strings"

	"placement-portal-backend/internal/services/auth"

	"github.com/gin-gonic/gin"
)

// RequireRole validates the bearer token and checks the role claim
// against the allowed set. The caller's id ends up in the "userID"
// context key.
func RequireRole(secret string, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		id, role, err := auth.ParseToken(secret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		allowed := false
		for _, r := range roles {
			if r == role {
				allowed = true
				break
			}
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Set("userID", id)
		c.Set("role", role)
		c.Next()
	}
}
