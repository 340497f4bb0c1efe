// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"

	"foodgram/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumRecipes  int
	ShouldClean bool
	SkipBcrypt  bool
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d recipes...", opts.NumUsers, opts.NumRecipes)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	f := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create users: %w", err)
		}
		users = append(users, user)
	}
	logCreated("test users", len(users))

	ingredients, tags, err := seedCatalog(f)
	if err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	logCreated("ingredients", len(ingredients))
	logCreated("tags", len(tags))

	recipes := make([]*models.Recipe, 0, opts.NumRecipes)
	for i := 0; i < opts.NumRecipes; i++ {
		author := users[f.rng.Intn(len(users))]
		recipe, err := f.CreateRecipe(author, ingredients, tags)
		if err != nil {
			return fmt.Errorf("failed to create recipes: %w", err)
		}
		recipes = append(recipes, recipe)
	}
	logCreated("recipes", len(recipes))

	if err := seedMemberships(f, users, recipes); err != nil {
		return fmt.Errorf("failed to seed memberships: %w", err)
	}

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func seedCatalog(f *Factory) ([]models.Ingredient, []models.Tag, error) {
	ingredients := make([]models.Ingredient, 0, 30)
	for i := 0; i < 30; i++ {
		ing, err := f.CreateIngredient()
		if err != nil {
			// Generated (name, unit) pairs can collide; skip duplicates.
			continue
		}
		ingredients = append(ingredients, *ing)
	}

	tags := make([]models.Tag, 0, 6)
	for i := 0; i < 6; i++ {
		tag, err := f.CreateTag()
		if err != nil {
			continue
		}
		tags = append(tags, *tag)
	}

	if len(ingredients) == 0 || len(tags) == 0 {
		return nil, nil, fmt.Errorf("catalog seeding produced no rows")
	}
	return ingredients, tags, nil
}

func seedMemberships(f *Factory, users []*models.User, recipes []*models.Recipe) error {
	if len(users) < 2 || len(recipes) == 0 {
		return nil
	}

	for _, user := range users {
		for _, idx := range f.rng.Perm(len(recipes))[:minInt(3, len(recipes))] {
			// Duplicate memberships hit the unique index; fine to skip.
			_ = f.CreateFavorite(user, recipes[idx])
		}
		for _, idx := range f.rng.Perm(len(recipes))[:minInt(2, len(recipes))] {
			_ = f.CreateCartItem(user, recipes[idx])
		}

		author := users[f.rng.Intn(len(users))]
		if author.ID != user.ID {
			_ = f.CreateFollow(user, author)
		}
	}
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE recipe_ingredients, recipe_tags, favorites, shopping_carts, follows, recipes, ingredients, tags, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}
