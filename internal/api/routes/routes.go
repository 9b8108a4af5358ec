package routes

import (
	"brand-portal/internal/api/handlers"
	"brand-portal/internal/api/middleware"
	"brand-portal/internal/config"
	"brand-portal/internal/service"
	"brand-portal/internal/storage"
	"brand-portal/internal/ws"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Setup wires services and handlers onto the router.
func Setup(router *gin.Engine, db *gorm.DB, files storage.Storage, hub *ws.Hub, cfg *config.Config, log *zap.SugaredLogger) {
	notificationSvc := service.NewNotificationService(db, hub, log)
	assetSvc := service.NewAssetService(db, files, notificationSvc, log)
	folderSvc := service.NewFolderService(db, log)
	brandSvc := service.NewBrandService(db, files, log)
	userSvc := service.NewUserService(db, log)

	authHandler := handlers.NewAuthHandler(userSvc, cfg, log)
	assetHandler := handlers.NewAssetHandler(assetSvc, files, cfg, log)
	folderHandler := handlers.NewFolderHandler(folderSvc, log)
	brandHandler := handlers.NewBrandHandler(brandSvc, files, log)
	userHandler := handlers.NewUserHandler(userSvc, log)
	notificationHandler := handlers.NewNotificationHandler(notificationSvc, hub, log)

	v1 := router.Group("/api/v1")

	// Public routes
	public := v1.Group("/")
	{
		public.GET("/health", handlers.HealthCheck)
		public.POST("/auth/login", authHandler.Login)
		public.POST("/auth/validate-token", authHandler.ValidateToken)
		public.POST("/auth/refresh-token", authHandler.RefreshToken)
	}

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.JWTAuth(db, cfg))
	{
		auth := protected.Group("/auth")
		{
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/profile", authHandler.Profile)
			auth.POST("/change-password", authHandler.ChangePassword)
		}

		assets := protected.Group("/assets")
		{
			assets.GET("", assetHandler.List)
			assets.POST("", assetHandler.Upload)
			assets.GET("/export/csv", assetHandler.ExportCSV)
			assets.GET("/export/json", assetHandler.ExportJSON)
			assets.GET("/:id", assetHandler.Get)
			assets.PUT("/:id", assetHandler.Update)
			assets.DELETE("/:id", assetHandler.Delete)
			assets.POST("/:id/share", assetHandler.Share)
			assets.GET("/:id/download", assetHandler.Download)
		}

		folders := protected.Group("/folders")
		{
			folders.GET("", folderHandler.List)
			folders.POST("", folderHandler.Create)
			folders.GET("/:id", folderHandler.Get)
			folders.PUT("/:id", folderHandler.Update)
			folders.DELETE("/:id", folderHandler.Delete)
		}

		brands := protected.Group("/brands")
		{
			brands.GET("", brandHandler.List)
			brands.GET("/:id", brandHandler.Get)

			adminBrands := brands.Group("")
			adminBrands.Use(middleware.AdminOnly())
			{
				adminBrands.POST("", brandHandler.Create)
				adminBrands.PUT("/:id", brandHandler.Update)
				adminBrands.DELETE("/:id", brandHandler.Delete)
			}
		}

		users := protected.Group("/users")
		{
			users.GET("/:id", userHandler.Get)
			users.PUT("/:id", userHandler.Update)

			adminUsers := users.Group("")
			adminUsers.Use(middleware.AdminOnly())
			{
				adminUsers.GET("", userHandler.List)
				adminUsers.POST("", userHandler.Create)
				adminUsers.DELETE("/:id", userHandler.Delete)
			}
		}

		notifications := protected.Group("/notifications")
		{
			notifications.GET("", notificationHandler.List)
			notifications.POST("", notificationHandler.Create)
			notifications.GET("/stream", notificationHandler.Stream)
			notifications.PUT("/mark-all-read", notificationHandler.MarkAllRead)
			notifications.PUT("/:id/read", notificationHandler.MarkRead)
			notifications.DELETE("/:id", notificationHandler.Delete)
		}
	}
}
