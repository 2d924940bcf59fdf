package v1

import (
	"net/http"
	"time"

	"portfolio-backend/config"
	"portfolio-backend/internal/delivery/http/middleware"
	"portfolio-backend/internal/domain"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	BlogUC    domain.BlogUsecase
	ProjectUC domain.ProjectUsecase
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger()) // Use standard Gin logger
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second

	globalLimit := middleware.DefaultRateLimitConfig()
	globalLimit.Limit = deps.Config.RateLimitGlobalThreshold
	globalLimit.Window = window
	r.Use(middleware.RateLimitMiddleware(globalLimit))

	// Health Check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Uploaded images are served straight from disk
	r.Static("/uploads", deps.Config.UploadDir)

	api := r.Group("/api")
	{
		contactLimit := middleware.ContactRateLimitConfig()
		contactLimit.Limit = deps.Config.RateLimitContactThreshold
		contactLimit.Window = window

		contact := api.Group("/contact")
		contact.Use(middleware.RateLimitMiddleware(contactLimit))
		NewContactHandler(contact, deps.ContactUC)

		// Writes get the stricter upload limiter; reads stay on the global one.
		uploadCfg := middleware.UploadRateLimitConfig()
		uploadCfg.Limit = deps.Config.RateLimitUploadThreshold
		uploadCfg.Window = window
		uploadLimit := middleware.RateLimitMiddleware(uploadCfg)
		NewBlogHandler(api.Group("/blogs"), uploadLimit, deps.BlogUC)
		NewProjectHandler(api.Group("/projects"), uploadLimit, deps.ProjectUC)
	}

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
