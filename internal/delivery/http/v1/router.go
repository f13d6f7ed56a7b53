package v1

import (
	"net/http"
	"time"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/auth"
	"go-jobboard-backend/pkg/storage"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	JobUC         domain.JobUsecase
	CandidateUC   domain.CandidateUsecase
	ApplicationUC domain.ApplicationUsecase
	AnalyticsUC   domain.AnalyticsUsecase
	Tokens        *auth.TokenManager
	Files         *storage.LocalStore
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global middlewares. CORS must run first so even error responses
	// carry the headers.
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL))
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.ErrorHandler())

	limiter := middleware.NewRateLimiter(
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
		deps.Config.RateLimitLoginThreshold,
	)

	// Uploaded resumes are served as plain static files.
	r.Static(deps.Config.UploadBaseURL, deps.Files.Dir())

	v1 := r.Group("/v1")

	// Health check
	v1.GET("/health", func(c *gin.Context) {
		response.JSON(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens))
	{
		NewAuthHandler(v1, deps.AuthUC, limiter)
		NewJobHandler(v1, protected, deps.JobUC)
		NewCandidateHandler(v1, protected, deps.CandidateUC, deps.Files)
		NewApplicationHandler(protected, deps.ApplicationUC)
		NewAnalyticsHandler(protected, deps.AnalyticsUC)
	}

	return r
}
