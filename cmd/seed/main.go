// Command seed populates the database with demo data for development.
package main

import (
	"flag"
	"log"

	"foodgram/internal/config"
	"foodgram/internal/database"
	"foodgram/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 10, "number of users to create")
	numRecipes := flag.Int("recipes", 40, "number of recipes to create")
	clean := flag.Bool("clean", false, "truncate existing data first")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "store plaintext passwords (fast local seeding only)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	opts := seed.Options{
		NumUsers:    *numUsers,
		NumRecipes:  *numRecipes,
		ShouldClean: *clean,
		SkipBcrypt:  *skipBcrypt,
	}
	if err := seed.Seed(db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
