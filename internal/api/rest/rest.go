package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/pharmatrace/batchtrace/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Batch registration and custody transfer (open; the ledger authorizes
		// by ownership)
		v1.POST("/batches", handler.RegisterBatch)
		v1.POST("/batches/:id/transfers", handler.Transfer)

		// Batch read access (public)
		v1.GET("/batches", handler.ListBatches)
		v1.GET("/batches/:id", handler.GetBatch)
		v1.GET("/batches/:id/history", handler.GetHistory)
		v1.GET("/batch-codes/:code", handler.GetBatchByCode)
		v1.GET("/owners/:identity/batches", handler.ListOwnedBatches)

		// Deactivation (requires authentication; ownership is still checked by
		// the ledger)
		v1.POST("/batches/:id/deactivate", middleware.Auth(authCfg), handler.Deactivate)

		// Role directory
		v1.GET("/roles/:identity", handler.GetRole)
		v1.POST("/roles", middleware.Auth(authCfg), handler.AssignRole)

		// Dashboard (public read access)
		v1.GET("/dashboard", handler.GetDashboard)

		// Webhook endpoints (requires API key authentication only)
		v1.POST("/webhooks/clients", middleware.APIKeyAuth(authCfg), handler.CreateWebhookClient)
	}
}
