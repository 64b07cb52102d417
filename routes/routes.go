package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/voz-urbana/api-go/controllers"
	"github.com/voz-urbana/api-go/middleware"
	"github.com/voz-urbana/api-go/realtime"
	"github.com/voz-urbana/api-go/storage"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, storageClient *storage.Client, hub *realtime.Hub) {
	// Initialize controllers
	authController := controllers.NewAuthController(db)
	reportController := controllers.NewReportController(db, storageClient, hub)
	interactionController := controllers.NewInteractionController(db, hub)
	eventController := controllers.NewEventController(db, storageClient)
	mapController := controllers.NewMapController(db)
	statsController := controllers.NewStatsController(db)
	uploadController := controllers.NewUploadController(storageClient)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
		public.POST("/auth/google", authController.GoogleLogin)
		public.POST("/refresh-token", authController.RefreshToken)
		public.POST("/logout", authController.Logout)
	}

	// Public reads. OptionalAuth resolves per-viewer fields for signed-in
	// callers without shutting out anonymous ones.
	reads := r.Group("/api")
	reads.Use(middleware.OptionalAuth())
	{
		SetupReportRoutes(reads, reportController, interactionController)
		SetupEventReadRoutes(reads, eventController)
		reads.GET("/reports/map", mapController.GetMapMarkers)
		reads.GET("/stats", statsController.GetStatistics)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/profile", authController.GetProfile)
		protected.PUT("/profile", authController.UpdateProfile)

		SetupReportWriteRoutes(protected, reportController)
		SetupInteractionRoutes(protected, interactionController)
		SetupEventWriteRoutes(protected, eventController)
		SetupUploadRoutes(protected, uploadController)
	}
}
