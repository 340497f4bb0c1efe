package service

import (
	"context"
	"fmt"
	"strings"

	"foodgram/internal/models"
	"foodgram/internal/observability"
	"foodgram/internal/repository"
)

// ShoppingService manages the per-user shopping cart and renders the
// aggregated shopping list report.
type ShoppingService struct {
	cartRepo   repository.ShoppingCartRepository
	recipeRepo repository.RecipeRepository
}

// NewShoppingService returns a new ShoppingService.
func NewShoppingService(cartRepo repository.ShoppingCartRepository, recipeRepo repository.RecipeRepository) *ShoppingService {
	return &ShoppingService{
		cartRepo:   cartRepo,
		recipeRepo: recipeRepo,
	}
}

// Add puts the recipe into the user's shopping cart and returns its
// short representation. Adding twice is a conflict.
func (s *ShoppingService) Add(ctx context.Context, userID, recipeID uint) (*models.RecipeSummary, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.Add(ctx, userID, recipeID); err != nil {
		return nil, err
	}
	summary := models.NewRecipeSummary(recipe)
	return &summary, nil
}

// Remove takes the recipe out of the user's shopping cart. Removing a
// recipe that is not a member fails.
func (s *ShoppingService) Remove(ctx context.Context, userID, recipeID uint) error {
	return s.cartRepo.Remove(ctx, userID, recipeID)
}

// BuildReport renders the aggregated shopping list for the user's
// cart. Amounts of the same ingredient are summed across recipes and
// rows are ordered by ingredient name. An empty cart yields just the
// header.
func (s *ShoppingService) BuildReport(ctx context.Context, userID uint) (string, error) {
	totals, err := s.cartRepo.SumIngredients(ctx, userID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Shopping list:")
	for _, t := range totals {
		b.WriteString(fmt.Sprintf("\n%s - %d %s", t.Name, t.Total, t.MeasurementUnit))
	}

	observability.ShoppingListExportsTotal.Inc()
	return b.String(), nil
}
