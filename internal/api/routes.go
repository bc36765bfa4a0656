package api

import (
	"github.com/gin-gonic/gin"

	"github.com/JustJay7/precedent/internal/service"
	"github.com/JustJay7/precedent/pkg/logger"
)

// SetupRoutes configures all application routes
func SetupRoutes(router *gin.Engine, svc *service.Service, logger *logger.Logger) {
	h := NewHandlers(svc, logger)

	api := router.Group("/api")
	{
		api.GET("/health", h.HealthCheck)
		api.GET("/cache/stats", h.CacheStats)

		authGroup := api.Group("/auth")
		authGroup.POST("/login", h.Login)
		authGroup.POST("/verify", h.Verify)

		legal := api.Group("/legal", h.RequireAuth())
		legal.POST("/analyze", h.Analyze)
		legal.POST("/confirm", h.Confirm)
		legal.GET("/history", h.History)
	}
}
