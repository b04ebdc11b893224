// Package dependency provides dependency injection for the application.
package dependency

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/weight-tracker/backend/config"
	"github.com/weight-tracker/backend/internal/application/sync"
	"github.com/weight-tracker/backend/internal/application/usecase/entry"
	"github.com/weight-tracker/backend/internal/application/usecase/goal"
	"github.com/weight-tracker/backend/internal/application/usecase/progress"
	"github.com/weight-tracker/backend/internal/infra/cache"
	"github.com/weight-tracker/backend/internal/infra/server/router"
	"github.com/weight-tracker/backend/internal/integration/adapters"
	"github.com/weight-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/weight-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/weight-tracker/backend/internal/integration/persistence"
	"github.com/weight-tracker/backend/internal/integration/store"
)

// Injector holds all application dependencies.
type Injector struct {
	Config   *config.Config
	DB       *gorm.DB
	Redis    *redis.Client
	Sessions *sync.Manager
	Router   *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dbHealthChecker func() bool) *Injector {
	// Create repositories
	entryRepo := persistence.NewEntryRepository(db)
	goalsRepo := persistence.NewGoalsRepository(db)

	// Create the document store over the persistence and cache tiers
	legacyStore := store.NewLegacyDiskStore(cfg.Legacy.Dir)
	documentStore := store.NewStore(entryRepo, goalsRepo, legacyStore, rdb, cfg.Sync.CacheTTL, slog.Default())

	// Create the per-user session manager
	sessions := sync.NewManager(documentStore, cfg.Sync.SafetyNetDelay)

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret)

	// Create goal use cases
	getGoalsUseCase := goal.NewGetGoalsUseCase(sessions)
	saveGoalsUseCase := goal.NewSaveGoalsUseCase(sessions)

	// Create entry use cases
	listEntriesUseCase := entry.NewListEntriesUseCase(sessions)
	addEntryUseCase := entry.NewAddEntryUseCase(sessions)
	removeEntryUseCase := entry.NewRemoveEntryUseCase(sessions)

	// Create progress use case
	getProgressUseCase := progress.NewGetProgressUseCase(sessions)

	// Create controllers
	healthController := controller.NewHealthController(
		dbHealthChecker,
		func() bool { return cache.HealthCheck(rdb) },
	)
	goalController := controller.NewGoalController(getGoalsUseCase, saveGoalsUseCase)
	entryController := controller.NewEntryController(listEntriesUseCase, addEntryUseCase, removeEntryUseCase)
	progressController := controller.NewProgressController(getProgressUseCase)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var writeRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		writeRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		writeRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		goalController,
		entryController,
		progressController,
		writeRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:   cfg,
		DB:       db,
		Redis:    rdb,
		Sessions: sessions,
		Router:   r,
	}
}
