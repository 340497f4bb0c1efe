// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"foodgram/internal/models"

	"gorm.io/gorm"
)

// IngredientTotal is one aggregated shopping list row: the summed
// amount of an ingredient across every recipe in a user's cart.
type IngredientTotal struct {
	Name            string
	MeasurementUnit string
	Total           int
}

// FavoriteRepository manages the per-user favorite membership set.
type FavoriteRepository interface {
	Add(ctx context.Context, userID, recipeID uint) error
	Remove(ctx context.Context, userID, recipeID uint) error
	Exists(ctx context.Context, userID, recipeID uint) (bool, error)
	RecipeIDs(ctx context.Context, userID uint) (map[uint]struct{}, error)
}

// ShoppingCartRepository manages the per-user shopping cart membership
// set and the cross-recipe ingredient aggregation over it.
type ShoppingCartRepository interface {
	Add(ctx context.Context, userID, recipeID uint) error
	Remove(ctx context.Context, userID, recipeID uint) error
	Exists(ctx context.Context, userID, recipeID uint) (bool, error)
	RecipeIDs(ctx context.Context, userID uint) (map[uint]struct{}, error)
	SumIngredients(ctx context.Context, userID uint) ([]IngredientTotal, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Add(ctx context.Context, userID, recipeID uint) error {
	fav := models.Favorite{UserID: userID, RecipeID: recipeID}
	if err := r.db.WithContext(ctx).Create(&fav).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewConflictError("recipe already in favorites")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, recipeID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Favorite{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Favorite", recipeID)
	}
	return nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, recipeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *favoriteRepository) RecipeIDs(ctx context.Context, userID uint) (map[uint]struct{}, error) {
	return recipeIDSet(r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ?", userID))
}

type shoppingCartRepository struct {
	db *gorm.DB
}

// NewShoppingCartRepository creates a new shopping cart repository
func NewShoppingCartRepository(db *gorm.DB) ShoppingCartRepository {
	return &shoppingCartRepository{db: db}
}

func (r *shoppingCartRepository) Add(ctx context.Context, userID, recipeID uint) error {
	row := models.ShoppingCart{UserID: userID, RecipeID: recipeID}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewConflictError("recipe already in shopping cart")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *shoppingCartRepository) Remove(ctx context.Context, userID, recipeID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.ShoppingCart{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("ShoppingCart", recipeID)
	}
	return nil
}

func (r *shoppingCartRepository) Exists(ctx context.Context, userID, recipeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ShoppingCart{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *shoppingCartRepository) RecipeIDs(ctx context.Context, userID uint) (map[uint]struct{}, error) {
	return recipeIDSet(r.db.WithContext(ctx).
		Model(&models.ShoppingCart{}).
		Where("user_id = ?", userID))
}

// SumIngredients flattens the recipe compositions of every recipe in
// the user's cart, grouped by ingredient identity and ordered by name
// so the rendered report is deterministic.
func (r *shoppingCartRepository) SumIngredients(ctx context.Context, userID uint) ([]IngredientTotal, error) {
	var totals []IngredientTotal
	if err := r.db.WithContext(ctx).
		Table("recipe_ingredients").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name").
		Scan(&totals).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return totals, nil
}

func recipeIDSet(q *gorm.DB) (map[uint]struct{}, error) {
	var ids []uint
	if err := q.Pluck("recipe_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}
