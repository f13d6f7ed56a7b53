package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupRouter(tokens *auth.TokenManager, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/", middleware.AuthMiddleware(tokens))
	if len(roles) > 0 {
		group.Use(middleware.RequireRoles(roles...))
	}
	group.GET("/probe", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString(string(domain.KeyUserID)),
			"role":    c.GetString(string(domain.KeyUserRole)),
		})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)

	t.Run("missing header is 401", func(t *testing.T) {
		r := setupRouter(tokens)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("non-bearer scheme is 401", func(t *testing.T) {
		r := setupRouter(tokens)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("tampered token is 401", func(t *testing.T) {
		r := setupRouter(tokens)
		token, _ := tokens.Issue("user1", domain.RoleCandidate)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+token+"x")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token attaches identity", func(t *testing.T) {
		r := setupRouter(tokens)
		token, _ := tokens.Issue("user1", domain.RoleCandidate)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "user1")
		assert.Contains(t, w.Body.String(), domain.RoleCandidate)
	})
}

func TestRequireRoles(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)

	t.Run("wrong role is 403, not 401", func(t *testing.T) {
		r := setupRouter(tokens, domain.RoleEmployer)
		token, _ := tokens.Issue("user1", domain.RoleCandidate)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("any allowed role passes", func(t *testing.T) {
		r := setupRouter(tokens, domain.RoleEmployer, domain.RoleAdmin)
		token, _ := tokens.Issue("user2", domain.RoleAdmin)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
