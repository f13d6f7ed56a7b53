package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/audit"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

func NewAuthHandler(public *gin.RouterGroup, authUC domain.AuthUsecase, limiter *middleware.RateLimiter) {
	handler := &AuthHandler{authUC: authUC}

	auth := public.Group("/auth")
	{
		auth.POST("/signup", handler.Signup)
		auth.POST("/login", limiter.Limit("login"), handler.Login)
	}
}

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=candidate employer"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Signup godoc
// @Summary      User registration
// @Description  Register a new user with email, password, and role
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        signup  body      SignupRequest  true  "Registration details"
// @Success      201     {object}  domain.AuthResult
// @Failure      400     {object}  response.ErrorBody
// @Failure      409     {object}  response.ErrorBody
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	result, err := h.authUC.Signup(c, req.Email, req.Password, req.Role)
	if err != nil {
		c.Error(err)
		return
	}

	response.JSON(c, http.StatusCreated, result)
}

// Login godoc
// @Summary      User login
// @Description  Authenticate with email and password, returns a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Credentials"
// @Success      200    {object}  domain.AuthResult
// @Failure      400    {object}  response.ErrorBody
// @Failure      401    {object}  response.ErrorBody
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	result, err := h.authUC.Login(c, req.Email, req.Password)
	if err != nil {
		audit.Event(audit.EventLoginFailed, req.Email, c.ClientIP(), "")
		c.Error(err)
		return
	}

	audit.Event(audit.EventLoginSuccess, result.User.ID, c.ClientIP(), "")
	response.JSON(c, http.StatusOK, result)
}
