package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vonvha/Nutri-Smart/services"
)

// UserEmailKey is the gin context key holding the caller's identity.
const UserEmailKey = "userEmail"

// AuthMiddleware resolves the bearer token to a user email. Requests without
// a resolvable token never reach the handlers.
func AuthMiddleware(resolver services.IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		email, err := resolver.ResolveIdentity(tokenString)
		if err != nil || email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(UserEmailKey, email)
		c.Next()
	}
}

// UserEmail reads the identity set by AuthMiddleware.
func UserEmail(c *gin.Context) string {
	return c.GetString(UserEmailKey)
}
