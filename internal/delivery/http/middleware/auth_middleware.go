package middleware

import (
	"net/http"
	"strings"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/audit"
	"go-jobboard-backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the bearer credential and attaches the
// normalized identity to the request context. Failures are terminal per
// request; there are no retries.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			audit.Event(audit.EventAuthFailure, "", c.ClientIP(), "missing bearer token")
			response.Error(c, http.StatusUnauthorized, "Authorization header missing or invalid", "UNAUTHORIZED")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		identity, err := tokens.Verify(tokenString)
		if err != nil {
			audit.Event(audit.EventAuthFailure, "", c.ClientIP(), err.Error())
			response.Error(c, http.StatusUnauthorized, "Invalid token", "UNAUTHORIZED")
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), identity.UserID)
		c.Set(string(domain.KeyUserRole), identity.Role)

		c.Next()
	}
}

// RequireRoles rejects callers whose role is not in the allowed set.
// Runs after AuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(c *gin.Context) {
		role := c.GetString(string(domain.KeyUserRole))
		if !allowed[role] {
			audit.Event(audit.EventForbidden, c.GetString(string(domain.KeyUserID)), c.ClientIP(), c.FullPath())
			response.Error(c, http.StatusForbidden, "Forbidden", "FORBIDDEN")
			c.Abort()
			return
		}
		c.Next()
	}
}
