package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"festive-births-svc/internal/location"
	"festive-births-svc/internal/middleware"
	"festive-births-svc/internal/repository"
	"festive-births-svc/internal/service"
	"festive-births-svc/pkg/logger"
)

// Services groups everything the routes depend on
type Services struct {
	Auth      service.AuthService
	Users     service.UserService
	Delivery  service.DeliveryService
	Dashboard service.DashboardService
	Reports   service.ReportService
	Directory *location.Directory
	Presence  repository.PresenceStore
	Health    map[string]Pinger
}

// Routes below the auth group that accounts on the temporary password may still call
var passwordChangeRoutes = []string{
	"/api/v1/auth/password-change",
	"/api/v1/auth/logout",
	"/api/v1/auth/me",
}

// SetupRoutes sets up all API routes
func SetupRoutes(router *gin.Engine, svc Services, logger *logger.Logger) {
	// Initialize handlers
	authHandler := NewAuthHandler(svc.Auth, logger)
	userHandler := NewUserHandler(svc.Users, logger)
	deliveryHandler := NewDeliveryHandler(svc.Delivery, logger)
	dashboardHandler := NewDashboardHandler(svc.Dashboard, logger)
	reportHandler := NewReportHandler(svc.Reports, svc.Dashboard, logger)
	ajaxHandler := NewAjaxHandler(svc.Directory)
	healthHandler := NewHealthHandler(svc.Health)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", healthHandler.HealthCheck)

		v1.POST("/auth/login", authHandler.Login)

		authed := v1.Group("",
			middleware.Authenticate(svc.Auth, logger),
			middleware.RequirePasswordChanged(passwordChangeRoutes...),
			middleware.TrackLastSeen(svc.Presence, logger),
		)

		// Auth routes
		auth := authed.Group("/auth")
		{
			auth.POST("/logout", authHandler.Logout)
			auth.POST("/password-change", authHandler.ChangePassword)
			auth.GET("/me", authHandler.Me)
		}

		// Delivery routes
		deliveries := authed.Group("/deliveries")
		{
			deliveries.GET("", deliveryHandler.List)
			deliveries.GET("/form", deliveryHandler.Form)
			deliveries.GET("/:id", deliveryHandler.Get)
			deliveries.POST("", middleware.RequireModify(), deliveryHandler.Create)
			deliveries.PUT("/:id", middleware.RequireModify(), deliveryHandler.Update)
			deliveries.DELETE("/:id", middleware.RequireModify(), deliveryHandler.Delete)
		}

		// Dashboard routes
		authed.GET("/dashboard", dashboardHandler.GetDashboard)

		// Report routes
		reports := authed.Group("/reports")
		{
			reports.GET("/filter-form", reportHandler.FilterForm)
			reports.GET("/dashboard-pdf", reportHandler.DashboardPDF)
			reports.GET("/export-excel", reportHandler.ExportExcel)
			reports.GET("/abnormal-weights", reportHandler.AbnormalWeights)
			reports.GET("/nil", reportHandler.NilReports)
		}

		// Cascading lookups
		ajax := authed.Group("/ajax")
		{
			ajax.GET("/load-options", ajaxHandler.LoadOptions)
			ajax.GET("/get-facility-type", ajaxHandler.GetFacilityType)
		}

		// User management routes
		users := authed.Group("/users", middleware.RequireUserManager())
		{
			users.GET("", userHandler.List)
			users.GET("/form", userHandler.Form)
			users.GET("/active", userHandler.Active)
			users.GET("/export", middleware.RequireSuperuser(), userHandler.Export)
			users.GET("/:id", userHandler.Get)
			users.POST("", userHandler.Create)
			users.PUT("/:id", userHandler.Update)
			users.DELETE("/:id", userHandler.Delete)
		}
	}
}
