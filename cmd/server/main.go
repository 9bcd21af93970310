package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"festive-births-svc/docs"
	"festive-births-svc/internal/capture"
	"festive-births-svc/internal/config"
	"festive-births-svc/internal/database"
	"festive-births-svc/internal/handler"
	"festive-births-svc/internal/location"
	"festive-births-svc/internal/metrics"
	"festive-births-svc/internal/middleware"
	"festive-births-svc/internal/repository"
	"festive-births-svc/internal/service"
	"festive-births-svc/internal/token"
	"festive-births-svc/pkg/logger"
)

// @title Festive Births Service API
// @version 1.0
// @description Festive season birth reporting API for public health facilities

// @contact.name API Support

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Swagger documentation
	docs.SwaggerInfo.Title = "Festive Births Service API"
	docs.SwaggerInfo.Description = "Festive season birth reporting API for public health facilities"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%s", cfg.Server.Port)
	docs.SwaggerInfo.BasePath = ""
	docs.SwaggerInfo.Schemes = []string{"http"}

	// Initialize logger
	appLogger := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	appLogger.Info("Starting Festive Births Service...")

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// The location directory is static data; refuse to start if it is inconsistent
	dir := location.NewDirectory()
	if err := dir.Validate(); err != nil {
		appLogger.WithField("error", err).Fatal("Location directory is invalid")
	}

	// Initialize database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		appLogger.WithField("error", err).Fatal("Failed to connect to database")
	}
	appLogger.Info("Database connected successfully")

	// Run auto migration
	if err := db.AutoMigrate(); err != nil {
		appLogger.WithField("error", err).Fatal("Failed to run database migrations")
	}
	appLogger.Info("Database migrations completed successfully")

	if err := database.SeedSuperuser(db.DB, &cfg.Auth, appLogger); err != nil {
		appLogger.WithField("error", err).Fatal("Failed to seed superuser")
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		appLogger.WithField("error", err).Fatal("Failed to get database instance")
	}
	healthChecks := map[string]handler.Pinger{"database": sqlDB.PingContext}

	// Presence and token revocation live in Redis when configured, in memory otherwise
	startCtx, cancelStart := context.WithTimeout(context.Background(), 10*time.Second)
	redisClient, err := database.NewRedis(startCtx, &cfg.Redis)
	cancelStart()
	if err != nil {
		appLogger.WithField("error", err).Fatal("Failed to connect to redis")
	}

	var (
		presence    repository.PresenceStore
		revocations repository.RevocationStore
	)
	if redisClient != nil {
		appLogger.Info("Redis connected successfully")
		presence = repository.NewRedisPresenceStore(redisClient)
		revocations = repository.NewRedisRevocationStore(redisClient)
		healthChecks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	} else {
		appLogger.Warn("REDIS_URL not set, using in-memory presence and token revocation")
		presence = repository.NewMemoryPresenceStore()
		revocations = repository.NewMemoryRevocationStore()
	}

	appMetrics := metrics.New()
	tokens := token.NewManager(cfg.JWT.Secret, cfg.JWT.TTL)
	planner := capture.NewPlanner(dir, cfg.Reports.ReportDates)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.DB)
	deliveryRepo := repository.NewDeliveryRepository(db.DB)

	// Initialize services
	authService := service.NewAuthService(userRepo, revocations, tokens, cfg.Auth.DefaultPassword, appMetrics, appLogger)
	userService := service.NewUserService(userRepo, presence, dir, cfg.Auth.DefaultPassword, appMetrics, appLogger)
	deliveryService := service.NewDeliveryService(deliveryRepo, planner, dir, appMetrics, appLogger)
	dashboardService := service.NewDashboardService(deliveryRepo, dir, cfg.Reports.ReportDates, cfg.Reports.RegionName, appMetrics, appLogger)
	reportService := service.NewReportService(deliveryRepo, dashboardService, cfg.Reports.PDFStylesheetPath, appMetrics, appLogger)

	// Initialize Gin router
	router := gin.New()

	// Add middleware
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	router.Use(middleware.LoggerMiddleware(appLogger))
	router.Use(middleware.ErrorHandler(appLogger))
	router.Use(middleware.Metrics(appMetrics))
	router.NoRoute(middleware.NoRouteHandler())
	router.NoMethod(middleware.NoMethodHandler())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup routes
	handler.SetupRoutes(router, handler.Services{
		Auth:      authService,
		Users:     userService,
		Delivery:  deliveryService,
		Dashboard: dashboardService,
		Reports:   reportService,
		Directory: dir,
		Presence:  presence,
		Health:    healthChecks,
	}, appLogger)

	// Create HTTP server
	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		appLogger.WithField("port", cfg.Server.Port).Info("Server starting...")
		appLogger.WithField("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Server.Port)).Info("Swagger documentation available")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithField("error", err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.WithField("error", err).Fatal("Server forced to shutdown")
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			appLogger.WithField("error", err).Error("Failed to close redis connection")
		}
	}

	if err := db.Close(); err != nil {
		appLogger.WithField("error", err).Error("Failed to close database connection")
	}

	appLogger.Info("Server exited successfully")
}
