// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"time"

	"foodgram/internal/models"
	"foodgram/internal/observability"

	"gorm.io/gorm"
)

// RecipeFilter narrows recipe list queries.
type RecipeFilter struct {
	AuthorID    uint
	TagSlugs    []string
	FavoritedBy uint
	InCartOf    uint
	Limit       int
	Offset      int
}

// RecipeRepository defines the interface for recipe aggregate operations.
// Create and ReplaceComposition are transactional: either the recipe and
// all of its link rows are persisted, or nothing is.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe, ingredients []models.RecipeIngredient, tags []models.RecipeTag) error
	ReplaceComposition(ctx context.Context, recipe *models.Recipe, ingredients []models.RecipeIngredient, tags []models.RecipeTag) error
	Delete(ctx context.Context, recipeID uint) error
	GetByID(ctx context.Context, id uint) (*models.Recipe, error)
	List(ctx context.Context, filter RecipeFilter) ([]models.Recipe, error)
	ListByAuthor(ctx context.Context, authorID uint, limit int) ([]models.Recipe, error)
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
}

// recipeRepository implements RecipeRepository
type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe, ingredients []models.RecipeIngredient, tags []models.RecipeTag) error {
	defer observability.TrackQuery("create", "recipes", time.Now())

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		return createLinks(tx, recipe.ID, ingredients, tags)
	})
	return translateWriteError(err)
}

// ReplaceComposition applies the replace-all update strategy: the
// recipe's scalar fields are saved and every existing link row is
// deleted and reinserted from the new set, all in one transaction.
func (r *recipeRepository) ReplaceComposition(ctx context.Context, recipe *models.Recipe, ingredients []models.RecipeIngredient, tags []models.RecipeTag) error {
	defer observability.TrackQuery("replace_composition", "recipes", time.Now())

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(recipe).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeTag{}).Error; err != nil {
			return err
		}
		return createLinks(tx, recipe.ID, ingredients, tags)
	})
	return translateWriteError(err)
}

// Delete cascades the recipe's link rows and every membership row
// referencing it, in one transaction.
func (r *recipeRepository) Delete(ctx context.Context, recipeID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.ShoppingCart{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Recipe{}, recipeID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Recipe", recipeID)
	}
	return translateWriteError(err)
}

func (r *recipeRepository) GetByID(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Ingredients.Ingredient").
		Preload("Tags.Tag").
		First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Recipe", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &recipe, nil
}

func (r *recipeRepository) List(ctx context.Context, filter RecipeFilter) ([]models.Recipe, error) {
	var recipes []models.Recipe

	q := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Ingredients.Ingredient").
		Preload("Tags.Tag").
		Order("pub_date DESC")

	if filter.AuthorID != 0 {
		q = q.Where("recipes.author_id = ?", filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		q = q.Where("recipes.id IN (?)", r.db.
			Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs))
	}
	if filter.FavoritedBy != 0 {
		q = q.Where("recipes.id IN (?)", r.db.
			Table("favorites").
			Select("favorites.recipe_id").
			Where("favorites.user_id = ?", filter.FavoritedBy))
	}
	if filter.InCartOf != 0 {
		q = q.Where("recipes.id IN (?)", r.db.
			Table("shopping_carts").
			Select("shopping_carts.recipe_id").
			Where("shopping_carts.user_id = ?", filter.InCartOf))
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	if err := q.Find(&recipes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return recipes, nil
}

func (r *recipeRepository) ListByAuthor(ctx context.Context, authorID uint, limit int) ([]models.Recipe, error) {
	var recipes []models.Recipe
	q := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("pub_date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&recipes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return recipes, nil
}

func (r *recipeRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func createLinks(tx *gorm.DB, recipeID uint, ingredients []models.RecipeIngredient, tags []models.RecipeTag) error {
	for i := range ingredients {
		ingredients[i].ID = 0
		ingredients[i].RecipeID = recipeID
	}
	for i := range tags {
		tags[i].ID = 0
		tags[i].RecipeID = recipeID
	}
	if len(ingredients) > 0 {
		if err := tx.Create(&ingredients).Error; err != nil {
			return err
		}
	}
	if len(tags) > 0 {
		if err := tx.Create(&tags).Error; err != nil {
			return err
		}
	}
	return nil
}

func translateWriteError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return models.NewConflictError("duplicate composition row")
	default:
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return models.NewInternalError(err)
	}
}
