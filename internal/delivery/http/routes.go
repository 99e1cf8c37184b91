package http

import (
	"net/http"

	"github.com/AnujNegi10/kfc-v3-new/config"
	"github.com/gin-gonic/gin"
)

// SetupRouter creates and configures the Gin router. metricsHandler is
// mounted at the configured metrics path when metrics are enabled.
func SetupRouter(cfg *config.Config, handler *Handler, metricsHandler http.Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	if cfg.Metrics.Enabled && metricsHandler != nil {
		router.GET(cfg.Metrics.Path, gin.WrapH(metricsHandler))
	}

	api := router.Group("/api")
	api.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	{
		products := api.Group("/products")
		{
			products.GET("", handler.ListProducts)
			products.GET("/search", handler.SearchProducts)
		}
	}

	return router
}
