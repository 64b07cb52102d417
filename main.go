package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/voz-urbana/api-go/config"
	"github.com/voz-urbana/api-go/logger"
	"github.com/voz-urbana/api-go/middleware"
	"github.com/voz-urbana/api-go/realtime"
	"github.com/voz-urbana/api-go/routes"
	"github.com/voz-urbana/api-go/scheduler"
	"github.com/voz-urbana/api-go/storage"
)

func main() {
	// .env is optional; production configures through the environment.
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file loaded")
	}

	logger.Init()

	db := config.InitDB()
	storageClient := storage.NewClient(config.GetR2Config())
	hub := realtime.NewHub()

	r := gin.Default()
	r.Use(middleware.NewMetrics().Handler())

	routes.SetupRoutes(r, db, storageClient, hub)

	cleanup := scheduler.NewCleanup(db, storageClient)
	if err := cleanup.Start(); err != nil {
		logrus.WithError(err).Fatal("failed to start cleanup scheduler")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logrus.WithField("port", port).Info("Starting server")
	if err := r.Run(":" + port); err != nil {
		logrus.WithError(err).Fatal("server exited")
	}
}
