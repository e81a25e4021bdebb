package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/thurmanmarka/sundir/internal/metrics"
)

// SetupRouter creates and configures the Gin router.
func SetupRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), metrics.Middleware())

	// Setup CORS middleware.
	// Default to allow all origins if none are configured.
	corsConfig := cors.DefaultConfig()
	if len(h.cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = h.cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	router.Use(cors.New(corsConfig))

	// API v1 routes.
	v1 := router.Group("/v1")
	sun := v1.Group("/sun")
	sun.GET("/position", h.GetPosition)
	sun.GET("/track", h.GetTrack)
	sun.GET("/crossing", h.GetCrossing)

	// Health check and metrics.
	router.GET("/health", h.HealthCheck)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	return router
}
