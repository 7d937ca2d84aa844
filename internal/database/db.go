package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"sari-pos-agent/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the store database and syncs the schema.
// DB_DRIVER=sqlite uses a local file (DB_PATH, default ./sari-pos.db);
// anything else expects a MySQL DSN in DB_DSN.
func Connect() (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	var db *gorm.DB
	var err error

	if os.Getenv("DB_DRIVER") == "sqlite" {
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "./sari-pos.db"
		}
		db, err = gorm.Open(sqlite.Open(path), cfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite database: %w", err)
		}
		log.Println("✅ Using local SQLite database:", path)
	} else {
		dsn := os.Getenv("DB_DSN")
		if dsn == "" {
			return nil, fmt.Errorf("DB_DSN not set: configure MySQL or set DB_DRIVER=sqlite")
		}

		// Wait for MySQL to come up
		for i := 0; i < 5; i++ {
			db, err = gorm.Open(mysql.Open(dsn), cfg)
			if err == nil {
				break
			}
			log.Printf("Failed to connect to database. Retrying in 2 seconds... (%d/5)", i+1)
			time.Sleep(2 * time.Second)
		}
		if err != nil {
			return nil, fmt.Errorf("connect to MySQL after 5 attempts: %w", err)
		}
		log.Println("✅ Successfully connected to MySQL!")
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Println("✅ Database Schema Synced!")

	return db, nil
}

// Migrate syncs the schema for every persisted collection.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Sale{},
		&models.SaleItem{},
		&models.Customer{},
		&models.DebtTransaction{},
	)
}
