// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"foodgram/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	// #nosec G404: acceptable for seeding
	return &Factory{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:  gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:     gofakeit.Email(),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Role:      models.RoleUser,
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateIngredient persists a catalog ingredient with a unique
// (name, unit) pair.
func (f *Factory) CreateIngredient(overrides ...func(*models.Ingredient)) (*models.Ingredient, error) {
	units := []string{"g", "kg", "ml", "l", "pcs", "tbsp", "tsp"}
	ingredient := &models.Ingredient{
		Name:            fmt.Sprintf("%s %s", gofakeit.AdjectiveDescriptive(), gofakeit.Fruit()),
		MeasurementUnit: units[f.rng.Intn(len(units))],
	}

	for _, override := range overrides {
		override(ingredient)
	}

	if err := f.db.Create(ingredient).Error; err != nil {
		return nil, err
	}
	return ingredient, nil
}

// CreateTag persists a catalog tag with unique name and slug.
func (f *Factory) CreateTag(overrides ...func(*models.Tag)) (*models.Tag, error) {
	word := fmt.Sprintf("%s-%d", gofakeit.Word(), gofakeit.Number(10, 9999))
	tag := &models.Tag{
		Name:  word,
		Color: gofakeit.HexColor(),
		Slug:  word,
	}

	for _, override := range overrides {
		override(tag)
	}

	if err := f.db.Create(tag).Error; err != nil {
		return nil, err
	}
	return tag, nil
}

// CreateRecipe persists a recipe for the author with a composition
// drawn from the given catalog entries.
func (f *Factory) CreateRecipe(author *models.User, ingredients []models.Ingredient, tags []models.Tag, overrides ...func(*models.Recipe)) (*models.Recipe, error) {
	recipe := &models.Recipe{
		AuthorID:    author.ID,
		Name:        gofakeit.Dinner(),
		Text:        gofakeit.Paragraph(1, 3, 6, "\n"),
		Image:       fmt.Sprintf("/media/recipes/%s.jpg", gofakeit.UUID()),
		CookingTime: gofakeit.Number(models.MinCookingTime, 180),
	}

	for _, override := range overrides {
		override(recipe)
	}

	if err := f.db.Create(recipe).Error; err != nil {
		return nil, err
	}

	for _, ing := range pickIngredients(f.rng, ingredients) {
		link := models.RecipeIngredient{
			RecipeID:     recipe.ID,
			IngredientID: ing.ID,
			Amount:       gofakeit.Number(models.MinAmount, models.MaxAmount),
		}
		if err := f.db.Create(&link).Error; err != nil {
			return nil, err
		}
	}
	for _, tag := range pickTags(f.rng, tags) {
		link := models.RecipeTag{RecipeID: recipe.ID, TagID: tag.ID}
		if err := f.db.Create(&link).Error; err != nil {
			return nil, err
		}
	}
	return recipe, nil
}

// CreateFavorite persists a favorite membership row.
func (f *Factory) CreateFavorite(user *models.User, recipe *models.Recipe) error {
	return f.db.Create(&models.Favorite{UserID: user.ID, RecipeID: recipe.ID}).Error
}

// CreateCartItem persists a shopping cart membership row.
func (f *Factory) CreateCartItem(user *models.User, recipe *models.Recipe) error {
	return f.db.Create(&models.ShoppingCart{UserID: user.ID, RecipeID: recipe.ID}).Error
}

// CreateFollow persists a follow edge between two users.
func (f *Factory) CreateFollow(follower, author *models.User) error {
	return f.db.Create(&models.Follow{FollowerID: follower.ID, AuthorID: author.ID}).Error
}

func pickIngredients(r *rand.Rand, pool []models.Ingredient) []models.Ingredient {
	if len(pool) == 0 {
		return nil
	}
	n := 1 + r.Intn(minInt(5, len(pool)))
	picked := make([]models.Ingredient, 0, n)
	for _, idx := range r.Perm(len(pool))[:n] {
		picked = append(picked, pool[idx])
	}
	return picked
}

func pickTags(r *rand.Rand, pool []models.Tag) []models.Tag {
	if len(pool) == 0 {
		return nil
	}
	n := 1 + r.Intn(minInt(3, len(pool)))
	picked := make([]models.Tag, 0, n)
	for _, idx := range r.Perm(len(pool))[:n] {
		picked = append(picked, pool[idx])
	}
	return picked
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func logCreated(kind string, n int) {
	log.Printf("✓ %d %s created", n, kind)
}
