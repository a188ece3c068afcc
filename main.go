package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"cba-rental-scraper/config"
	"cba-rental-scraper/exchange"
	"cba-rental-scraper/geo"
	"cba-rental-scraper/scraper/zonaprop"
	"cba-rental-scraper/services"
	"cba-rental-scraper/storage"
	"cba-rental-scraper/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== Córdoba Rental Scraper starting ===")
	logger.Info("Config — base URL: %s | page cap: %d | geocoder pause: %v",
		cfg.BaseURL, cfg.PagesHardLimit, cfg.GeocoderPause)

	ctx := context.Background()

	// The rate is fetched once and held for the whole run. Without it
	// no price can be normalized, so failure aborts before any page
	// is fetched.
	rate, err := exchange.NewClient(cfg.RateAPIURL, cfg.RequestTimeout).FetchBuyRate(ctx)
	if err != nil {
		logger.Error("Exchange rate fetch failed: %v", err)
		logger.Error("Aborting before any page is fetched.")
		os.Exit(1)
	}
	logger.Info("USD buy rate for this run: %.2f ARS", rate)

	runStart := time.Now()
	csvWriter, err := storage.NewCSVWriter(cfg.OutputDir, runStart)
	if err != nil {
		logger.Error("Failed to create export file: %v", err)
		os.Exit(1)
	}
	defer csvWriter.Close()

	store, err := storage.NewMongoStore(cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
	if err != nil {
		logger.Error("Failed to connect to MongoDB: %v", err)
		logger.Error("Make sure Docker is running: docker compose up -d")
		os.Exit(1)
	}
	defer store.Close(context.Background())

	geocoder := geo.NewGeocoder(cfg.GeocoderBaseURL, cfg.GeocoderPause, cfg.RequestTimeout, logger)

	s := zonaprop.New(cfg, logger, store, csvWriter, geocoder, rate)
	listings, err := s.Run(ctx)
	if err != nil {
		// Listings persisted before the failure are kept; the run just
		// could not reach its natural end.
		logger.Error("Scrape ended early: %v", err)
	}

	reportSvc := services.NewReportService(logger)
	reportSvc.Print(reportSvc.Generate(listings))

	fmt.Printf("  Done. %d new listings → MongoDB (%s.%s) | export → %s\n\n",
		len(listings), cfg.MongoDatabase, cfg.MongoCollection, csvWriter.Path())
}
