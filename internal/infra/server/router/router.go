// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/weight-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/weight-tracker/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine             *gin.Engine
	healthController   *controller.HealthController
	goalController     *controller.GoalController
	entryController    *controller.EntryController
	progressController *controller.ProgressController
	writeRateLimiter   *middleware.RateLimiter
	authMiddleware     *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	goalController *controller.GoalController,
	entryController *controller.EntryController,
	progressController *controller.ProgressController,
	writeRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:   healthController,
		goalController:     goalController,
		entryController:    entryController,
		progressController: progressController,
		writeRateLimiter:   writeRateLimiter,
		authMiddleware:     authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Goal routes (require authentication)
		if r.goalController != nil && r.authMiddleware != nil {
			goals := v1.Group("/goals")
			goals.Use(r.authMiddleware.Authenticate())
			{
				goals.GET("", r.goalController.Get)
				goals.PUT("", r.writeRateLimiter.Middleware(), r.goalController.Save)
			}
		}

		// Entry routes (require authentication)
		if r.entryController != nil && r.authMiddleware != nil {
			entries := v1.Group("/entries")
			entries.Use(r.authMiddleware.Authenticate())
			{
				entries.GET("", r.entryController.List)
				entries.POST("", r.writeRateLimiter.Middleware(), r.entryController.Add)
				entries.DELETE("/:date", r.writeRateLimiter.Middleware(), r.entryController.Remove)
			}
		}

		// Progress routes (require authentication)
		if r.progressController != nil && r.authMiddleware != nil {
			progress := v1.Group("/progress")
			progress.Use(r.authMiddleware.Authenticate())
			{
				progress.GET("", r.progressController.Get)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
