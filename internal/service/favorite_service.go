package service

import (
	"context"

	"foodgram/internal/models"
	"foodgram/internal/repository"
)

// FavoriteService manages the per-user favorites set.
type FavoriteService struct {
	favoriteRepo repository.FavoriteRepository
	recipeRepo   repository.RecipeRepository
}

// NewFavoriteService returns a new FavoriteService.
func NewFavoriteService(favoriteRepo repository.FavoriteRepository, recipeRepo repository.RecipeRepository) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		recipeRepo:   recipeRepo,
	}
}

// Add puts the recipe into the user's favorites and returns its short
// representation. Adding twice is a conflict.
func (s *FavoriteService) Add(ctx context.Context, userID, recipeID uint) (*models.RecipeSummary, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if err := s.favoriteRepo.Add(ctx, userID, recipeID); err != nil {
		return nil, err
	}
	summary := models.NewRecipeSummary(recipe)
	return &summary, nil
}

// Remove takes the recipe out of the user's favorites. Removing a
// recipe that is not a member fails.
func (s *FavoriteService) Remove(ctx context.Context, userID, recipeID uint) error {
	return s.favoriteRepo.Remove(ctx, userID, recipeID)
}
