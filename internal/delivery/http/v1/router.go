package v1

import (
	"net/http"

	"portfolio-backend/config"
	"portfolio-backend/internal/delivery/http/middleware"
	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/ratelimit"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	Limiter   ratelimit.Limiter
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Custom binding validators (shared email pattern)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	// Global middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Log.Error("panic recovered", "panic", recovered)
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		c.Abort()
	}))
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational")
	})

	// Public routes
	NewContactHandler(v1, deps.ContactUC, deps.Limiter)

	return r
}
