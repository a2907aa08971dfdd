package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	analyticsapp "github.com/rarerevisit/backend/internal/application/analytics"
	catalogapp "github.com/rarerevisit/backend/internal/application/catalog"
	contentapp "github.com/rarerevisit/backend/internal/application/content"
	socialapp "github.com/rarerevisit/backend/internal/application/social"
	"github.com/rarerevisit/backend/internal/domain/shared"
	"github.com/rarerevisit/backend/internal/infrastructure/cache"
	"github.com/rarerevisit/backend/internal/infrastructure/config"
	"github.com/rarerevisit/backend/internal/infrastructure/event"
	"github.com/rarerevisit/backend/internal/infrastructure/generation"
	"github.com/rarerevisit/backend/internal/infrastructure/logger"
	"github.com/rarerevisit/backend/internal/infrastructure/persistence"
	"github.com/rarerevisit/backend/internal/infrastructure/publisher"
	"github.com/rarerevisit/backend/internal/infrastructure/scheduler"
	"github.com/rarerevisit/backend/internal/interfaces/http/handler"
	"github.com/rarerevisit/backend/internal/interfaces/http/middleware"
	"github.com/rarerevisit/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

//	@title			Rare Revisit Social Hub API
//	@version		1.0
//	@description	Social media hub for a single-operator storefront: product catalogue, caption generation, scheduled publishing, and analytics.

//	@contact.name	API Support
//	@contact.url	https://github.com/rarerevisit/backend

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Social Hub",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	itemRepo := persistence.NewGormContentItemRepository(db.DB)
	accountRepo := persistence.NewGormSocialAccountRepository(db.DB)

	// Initialize event bus
	eventBus := event.NewInMemoryEventBus(log)

	// Idempotency store for event handlers; Redis when configured, otherwise
	// the in-memory store scoped to this process
	var idempotencyStore shared.IdempotencyStore
	if cfg.Redis.Enabled {
		redisStore, err := cache.NewRedisIdempotencyStore(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		idempotencyStore = redisStore
		log.Info("Redis idempotency store connected", zap.String("addr", cfg.Redis.Addr()))
	} else {
		idempotencyStore = cache.NewInMemoryIdempotencyStore()
	}

	// Publish outcomes feed the account sync counters; the idempotency
	// wrapper keeps redelivered events from double-counting
	publishOutcomeHandler := socialapp.NewPublishOutcomeHandler(accountRepo)
	eventBus.Subscribe(event.NewIdempotentHandler(
		publishOutcomeHandler,
		idempotencyStore,
		log,
		event.WithIdempotencyConfig(shared.IdempotencyConfig{
			Enabled: cfg.Event.IdempotencyEnabled,
			TTL:     cfg.Event.IdempotencyTTL,
		}),
	))

	log.Info("Event handlers registered",
		zap.Strings("publish_outcome_events", publishOutcomeHandler.EventTypes()),
	)

	// Start event bus
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Platform adapters and caption generator
	captionGenerator := generation.NewOpenAIGenerator(cfg.Generation)
	publisherRegistry := publisher.NewDefaultRegistry(cfg.Publish)

	// Initialize application services
	productService := catalogapp.NewProductService(productRepo)
	generationService := contentapp.NewGenerationService(captionGenerator, itemRepo, cfg.Generation.Timeout)
	lifecycleService := contentapp.NewLifecycleService(itemRepo, accountRepo, publisherRegistry, eventBus, cfg.Publish.Timeout)
	accountService := socialapp.NewAccountService(accountRepo, eventBus)
	summaryService := analyticsapp.NewSummaryService(itemRepo, accountRepo)

	// Seed the per-platform account registry so every platform has a row
	if err := accountService.EnsureAccounts(context.Background()); err != nil {
		log.Fatal("Failed to seed platform accounts", zap.Error(err))
	}

	// Initialize the publish scheduler and due-content poller (if enabled)
	if cfg.Scheduler.Enabled {
		schedulerConfig := scheduler.Config{
			Enabled:      cfg.Scheduler.Enabled,
			PollInterval: cfg.Scheduler.PollInterval,
			Workers:      cfg.Scheduler.Workers,
			JobTimeout:   cfg.Scheduler.JobTimeout,
		}
		executor := scheduler.NewLifecycleExecutor(lifecycleService, log)
		publishScheduler := scheduler.NewPublishScheduler(schedulerConfig, executor, log)
		if err := publishScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start publish scheduler", zap.Error(err))
		}
		defer func() {
			if err := publishScheduler.Stop(context.Background()); err != nil {
				log.Error("Error stopping publish scheduler", zap.Error(err))
			}
		}()

		publishPoller := scheduler.NewPublishPoller(schedulerConfig, itemRepo, publishScheduler, log)
		if err := publishPoller.Start(context.Background()); err != nil {
			log.Fatal("Failed to start publish poller", zap.Error(err))
		}
		defer func() {
			if err := publishPoller.Stop(context.Background()); err != nil {
				log.Error("Error stopping publish poller", zap.Error(err))
			}
		}()
		log.Info("Publish scheduler started",
			zap.Int("workers", cfg.Scheduler.Workers),
			zap.Duration("poll_interval", cfg.Scheduler.PollInterval),
			zap.Duration("job_timeout", cfg.Scheduler.JobTimeout),
		)
	}

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService)
	contentHandler := handler.NewContentHandler(generationService, lifecycleService)
	socialAccountHandler := handler.NewSocialAccountHandler(accountService)
	analyticsHandler := handler.NewAnalyticsHandler(summaryService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Catalog domain (products)
	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "catalog service ready"})
	})
	catalogRoutes.POST("/products", productHandler.Create)
	catalogRoutes.GET("/products", productHandler.List)
	catalogRoutes.GET("/products/:id", productHandler.GetByID)
	catalogRoutes.PUT("/products/:id", productHandler.Update)
	catalogRoutes.DELETE("/products/:id", productHandler.Delete)

	// Content domain (caption generation, content items)
	contentRoutes := router.NewDomainGroup("content", "/content")
	contentRoutes.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "content service ready"})
	})
	contentRoutes.POST("/generate", contentHandler.Generate)
	contentRoutes.POST("/posts", contentHandler.Create)
	contentRoutes.GET("/posts", contentHandler.List)
	contentRoutes.GET("/posts/:id", contentHandler.GetByID)
	contentRoutes.DELETE("/posts/:id", contentHandler.Delete)
	contentRoutes.POST("/posts/:id/schedule", contentHandler.Schedule)
	contentRoutes.POST("/posts/:id/publish", contentHandler.Publish)

	// Social domain (platform account registry)
	socialRoutes := router.NewDomainGroup("social", "/social")
	socialRoutes.GET("/accounts", socialAccountHandler.List)
	socialRoutes.POST("/accounts/:platform/connect", socialAccountHandler.Connect)
	socialRoutes.POST("/accounts/:platform/disconnect", socialAccountHandler.Disconnect)

	// Analytics domain
	analyticsRoutes := router.NewDomainGroup("analytics", "/analytics")
	analyticsRoutes.GET("/summary", analyticsHandler.Summary)

	// Register all domain groups
	r.Register(catalogRoutes).
		Register(contentRoutes).
		Register(socialRoutes).
		Register(analyticsRoutes)

	// Register system routes
	systemHandler := handler.NewSystemHandler()
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	r.Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
