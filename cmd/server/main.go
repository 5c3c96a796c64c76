package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mystocktax/backend/internal/api"
	"github.com/mystocktax/backend/internal/config"
	"github.com/mystocktax/backend/internal/database"
	"github.com/mystocktax/backend/internal/providers"
	"github.com/mystocktax/backend/internal/services"
	"github.com/mystocktax/backend/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	// Initialize database
	if err := database.Initialize(cfg.DBPath, cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize providers
	marketClient := providers.NewMarketClient(cfg.MarketAPIBaseURL, cfg.MarketAPIKey, cfg.MarketCallDelay)
	fredClient := providers.NewFredClient(cfg.FredAPIBaseURL, cfg.FredAPIKey)
	if cfg.FredAPIKey == "" {
		log.Println("FRED_API_KEY not set, economy endpoints will rely on fallback data")
	}

	// Initialize services
	quarterStore := store.NewQuarterStore(database.GetDB())
	chartService := services.NewChartService(quarterStore, marketClient, fredClient)
	portfolioService := services.NewPortfolioService(cfg.PortfolioFilePath)

	// Setup router
	router := api.SetupRouter(chartService, portfolioService)

	// Create HTTP server for graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests a deadline to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
