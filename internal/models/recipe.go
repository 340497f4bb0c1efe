// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	// MinAmount is the smallest accepted ingredient amount in a recipe.
	MinAmount = 1
	// MaxAmount is the largest accepted ingredient amount in a recipe.
	MaxAmount = 1000
	// MinCookingTime is the shortest accepted cooking time in minutes.
	MinCookingTime = 1
	// MaxCookingTime is the longest accepted cooking time in minutes.
	MaxCookingTime = 1000
)

// Recipe represents a published recipe. Its composition (ingredient
// amounts and tags) lives in explicit link rows owned by the recipe's
// lifecycle: every update replaces them wholesale.
type Recipe struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`
	Author      User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Text        string    `gorm:"type:text" json:"text"`
	Image       string    `json:"image"`
	CookingTime int       `gorm:"not null" json:"cooking_time"`
	PubDate     time.Time `gorm:"index" json:"pub_date"`

	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"-"`
	Tags        []RecipeTag        `gorm:"foreignKey:RecipeID" json:"-"`
}

// TableName specifies the table name for GORM
func (Recipe) TableName() string {
	return "recipes"
}

// BeforeSave refreshes the publication timestamp on every save.
func (r *Recipe) BeforeSave(_ *gorm.DB) error {
	r.PubDate = time.Now().UTC()
	return nil
}

// RecipeIngredient links a recipe to an ingredient with an amount.
// Unique per (recipe, ingredient).
type RecipeIngredient struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	RecipeID     uint       `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"recipe_id"`
	IngredientID uint       `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"ingredient_id"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"ingredient"`
	Amount       int        `gorm:"not null" json:"amount"`
}

// TableName specifies the table name for GORM
func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

// RecipeTag links a recipe to a tag. Unique per (recipe, tag).
// This explicit link entity is the single durable tag representation.
type RecipeTag struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	RecipeID uint `gorm:"not null;uniqueIndex:idx_recipe_tag" json:"recipe_id"`
	TagID    uint `gorm:"not null;uniqueIndex:idx_recipe_tag" json:"tag_id"`
	Tag      Tag  `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE" json:"tag"`
}

// TableName specifies the table name for GORM
func (RecipeTag) TableName() string {
	return "recipe_tags"
}

// IngredientAmountView is one hydrated composition row of a recipe view.
type IngredientAmountView struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeView is the fully hydrated representation of a recipe rendered
// to a viewer, including the viewer-relative membership flags.
type RecipeView struct {
	ID               uint                   `json:"id"`
	Tags             []Tag                  `json:"tags"`
	Author           UserView               `json:"author"`
	Ingredients      []IngredientAmountView `json:"ingredients"`
	IsFavorited      bool                   `json:"is_favorited"`
	IsInShoppingCart bool                   `json:"is_in_shopping_cart"`
	Name             string                 `json:"name"`
	Image            string                 `json:"image"`
	Text             string                 `json:"text"`
	CookingTime      int                    `json:"cooking_time"`
}

// RecipeSummary is the short recipe representation used in favorite,
// shopping cart and subscription responses.
type RecipeSummary struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// NewRecipeSummary builds the short representation of a recipe.
func NewRecipeSummary(r *Recipe) RecipeSummary {
	return RecipeSummary{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}
