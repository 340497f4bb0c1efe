// Command migrate runs the schema migrations against the configured database.
package main

import (
	"log"

	"foodgram/internal/config"
	"foodgram/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Connect already migrates outside production; run explicitly so this
	// command also works with APP_ENV=production.
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migration completed successfully")
}
