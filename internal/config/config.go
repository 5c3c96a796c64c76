package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	DBPath      string
	DatabaseURL string // when set, Postgres is used instead of the local sqlite file

	MarketAPIBaseURL string
	MarketAPIKey     string
	MarketCallDelay  time.Duration

	FredAPIBaseURL string
	FredAPIKey     string

	PortfolioFilePath string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		DBPath:      getEnv("DB_PATH", "./stocktax.db"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		MarketAPIBaseURL: getEnv("MARKET_API_BASE_URL", ""),
		MarketAPIKey:     getEnv("MARKET_API_KEY", ""),
		MarketCallDelay:  getEnvDuration("MARKET_CALL_DELAY", 500*time.Millisecond),

		FredAPIBaseURL: getEnv("FRED_API_BASE_URL", ""),
		FredAPIKey:     getEnv("FRED_API_KEY", ""),

		PortfolioFilePath: getEnv("PORTFOLIO_FILE_PATH", "./data.json"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	// Plain integers are taken as milliseconds.
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultValue
}
