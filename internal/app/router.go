package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"haulage/internal/handler"
	"haulage/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	JobHandler     *handler.JobHandler
	PricingHandler *handler.PricingHandler
	AuditHandler   *handler.AuditHandler
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Job routes. Every mutating route funnels into the same
		// orchestrator; there is no side door around the guard.
		jobs := v1.Group("/jobs")
		{
			jobs.POST("", deps.JobHandler.CreateJob)
			jobs.GET("", deps.JobHandler.GetAll)
			jobs.GET("/:id", deps.JobHandler.GetJob)
			jobs.POST("/:id/mutations", deps.JobHandler.ProposeMutation)
			jobs.POST("/:id/assign", deps.JobHandler.AssignJob)
			jobs.POST("/:id/complete", deps.JobHandler.CompleteJob)
			jobs.POST("/:id/cancel", deps.JobHandler.CancelJob)
			jobs.POST("/:id/review", deps.JobHandler.ReviewJob)
			jobs.GET("/:id/audit", deps.AuditHandler.ListByJob)
		}

		// Pricing routes.
		pricing := v1.Group("/pricing")
		{
			pricing.POST("/quote", deps.PricingHandler.Quote)
			pricing.GET("/matrix", deps.PricingHandler.GetMatrix)
		}
	}

	return router
}
