package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"

	"cba-rental-scraper/api"
	"cba-rental-scraper/config"
	"cba-rental-scraper/storage"
	"cba-rental-scraper/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	store, err := storage.NewMongoStore(cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
	if err != nil {
		logger.Error("Failed to connect to MongoDB: %v", err)
		os.Exit(1)
	}
	defer store.Close(context.Background())

	r := gin.Default()
	api.NewHandler(store, logger).RegisterRoutes(r)

	logger.Info("Read API listening on :%s", cfg.APIPort)
	if err := r.Run(":" + cfg.APIPort); err != nil {
		logger.Error("server error: %v", err)
		os.Exit(1)
	}
}
