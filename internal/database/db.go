package database

import (
	"fmt"
	"log"

	"sway-pr/internal/config"
	"sway-pr/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB opens the database and runs migrations. PostgreSQL is used when
// DB_HOST is configured, otherwise a local SQLite file.
func InitDB(cfg *config.Config) {
	var err error
	if cfg.DBHost != "" {
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode)
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Warn),
			TranslateError: true,
		})
		if err != nil {
			log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		log.Println("Connected to PostgreSQL successfully")
	} else {
		DB, err = gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Warn),
			TranslateError: true,
		})
		if err != nil {
			log.Fatalf("Failed to connect to SQLite: %v", err)
		}
		log.Printf("Connected to SQLite database at %s", cfg.DBPath)
	}

	Migrate(DB)
}

// Migrate runs auto-migration for all models. Split out so tests can run it
// against their own database handle.
func Migrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Upload{},
		&models.MediaContact{},
		&models.Staff{},
		&models.EmailTemplate{},
		&models.PressRelease{},
		&models.CoverageReport{},
		&models.Company{},
		&models.OutreachLog{},
	)
	if err != nil {
		log.Fatalf("Failed to run auto-migration: %v", err)
	}

	log.Println("Database migration completed")
}
