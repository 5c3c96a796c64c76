package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mystocktax/backend/internal/api/handlers"
	"github.com/mystocktax/backend/internal/services"
)

func SetupRouter(chartService *services.ChartService, portfolioService *services.PortfolioService) *gin.Engine {
	router := gin.Default()
	router.Use(metricsMiddleware())

	// Get frontend dist path from env
	frontendPath := os.Getenv("FRONTEND_DIST_PATH")
	serveFrontend := frontendPath != "" && dirExists(frontendPath)

	// CORS configuration - allow origins from environment or use defaults
	config := cors.DefaultConfig()
	if corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS"); corsOrigins != "" {
		config.AllowOrigins = strings.Split(corsOrigins, ",")
	} else {
		config.AllowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	config.AllowCredentials = false
	router.Use(cors.New(config))

	// Initialize handlers
	chartHandler := handlers.NewChartHandler(chartService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)

	// API routes
	api := router.Group("/api")
	{
		// Chart routes: the :metric segment is resolved against the
		// metric registry, so new metrics need no new routes.
		stock := api.Group("/stock")
		{
			stock.POST("/:metric/check", chartHandler.CheckStock)
			stock.POST("/:metric/refresh", chartHandler.RefreshStock)
		}

		economy := api.Group("/economy")
		{
			economy.POST("/:metric/check", chartHandler.CheckEconomy)
			economy.POST("/:metric/refresh", chartHandler.RefreshEconomy)
		}

		// Portfolio routes
		api.GET("/stocks", portfolioHandler.ListStocks)
		api.POST("/stocks", portfolioHandler.AddStock)
		api.PUT("/stocks/:id", portfolioHandler.UpdateStock)
		api.DELETE("/stocks/:id", portfolioHandler.DeleteStock)
		api.GET("/transactions", portfolioHandler.ListTransactions)
		api.POST("/transactions", portfolioHandler.AddTransaction)
		api.GET("/portfolio/summary", portfolioHandler.Summary)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Serve frontend static files
	if serveFrontend {
		indexPath := filepath.Join(frontendPath, "index.html")

		// Serve static assets
		router.Static("/assets", filepath.Join(frontendPath, "assets"))

		// Serve root index.html
		router.GET("/", func(c *gin.Context) {
			c.File(indexPath)
		})

		// SPA fallback - serve index.html for all non-API routes
		router.NoRoute(func(c *gin.Context) {
			path := c.Request.URL.Path

			if strings.HasPrefix(path, "/api") {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}

			c.File(indexPath)
		})
	}

	return router
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
