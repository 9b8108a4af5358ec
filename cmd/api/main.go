package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"brand-portal/internal/api/routes"
	"brand-portal/internal/config"
	"brand-portal/internal/database"
	"brand-portal/internal/storage"
	"brand-portal/internal/ws"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	var zapLogger *zap.Logger
	if cfg.Server.Env == "production" {
		zapLogger, err = zap.NewProduction()
	} else {
		zapLogger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	// Initialize database
	if err := database.Initialize(cfg); err != nil {
		logger.Fatalw("Failed to initialize database", "error", err)
	}

	// Initialize file storage
	files, err := storage.New(cfg)
	if err != nil {
		logger.Fatalw("Failed to initialize storage", "error", err)
	}

	// Initialize router
	router := gin.Default()
	hub := ws.NewHub()
	routes.Setup(router, database.GetDB(), files, hub, cfg, logger)

	// Serve local uploads directly
	if cfg.Storage.Provider == "local" {
		router.Static("/uploads", cfg.Storage.Path)
	}

	// Start server
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatalw("Failed to start server", "error", err)
	}
}
