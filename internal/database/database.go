package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mystocktax/backend/internal/models"
)

var DB *gorm.DB

// Initialize opens the database and migrates the schema. A DATABASE_URL
// selects Postgres for hosted deployments; otherwise a local sqlite file
// is used.
func Initialize(dbPath, databaseURL string) error {
	var (
		dialector gorm.Dialector
		backend   string
	)
	if databaseURL != "" {
		dialector = postgres.Open(databaseURL)
		backend = "postgres"
	} else {
		dialector = sqlite.Open(dbPath)
		backend = "sqlite"
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	log.Printf("Database connected (%s)", backend)

	// Auto-migrate the schema
	err = DB.AutoMigrate(&models.QuarterPoint{})
	if err != nil {
		return err
	}

	log.Println("Database migration completed")
	return nil
}

func GetDB() *gorm.DB {
	return DB
}
