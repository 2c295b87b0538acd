package main

import (
	"log"
	"os"

	"alkulous-relay/internal/model"
	"alkulous-relay/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database
	db, err := database.NewGormDBFromDSN(dsn, os.Getenv("GO_ENV") == "production")
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Step 1: Running AutoMigrate...")

	models := []interface{}{
		&model.Message{},
		&model.ApiKey{},
		&model.User{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 3. Post-Migration: indexes AutoMigrate does not express
	log.Println("Step 2: Creating indexes...")

	postMigrationSQL := []string{
		`CREATE INDEX IF NOT EXISTS idx_messages_timestamp_id ON messages (timestamp DESC, id DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_api_keys_created_at ON api_keys (created_at DESC);`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("Success: Database migration completed.")
}
