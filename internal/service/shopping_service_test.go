package service

import (
	"context"
	"testing"

	"foodgram/internal/models"
	"foodgram/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShoppingServiceAdd(t *testing.T) {
	recipeRepo := noopRecipeRepo()
	recipeRepo.getByIDFn = func(_ context.Context, id uint) (*models.Recipe, error) {
		if id == 42 {
			return &models.Recipe{ID: 42, Name: "Soup", Image: "/media/recipes/s.jpg", CookingTime: 15}, nil
		}
		return nil, models.NewNotFoundError("Recipe", id)
	}
	ctx := context.Background()

	t.Run("returns the short representation", func(t *testing.T) {
		svc := NewShoppingService(noopCartRepo(), recipeRepo)
		summary, err := svc.Add(ctx, 1, 42)
		require.NoError(t, err)
		assert.Equal(t, &models.RecipeSummary{ID: 42, Name: "Soup", Image: "/media/recipes/s.jpg", CookingTime: 15}, summary)
	})

	t.Run("unknown recipe is not added", func(t *testing.T) {
		cartRepo := noopCartRepo()
		added := false
		cartRepo.addFn = func(context.Context, uint, uint) error {
			added = true
			return nil
		}
		svc := NewShoppingService(cartRepo, recipeRepo)

		_, err := svc.Add(ctx, 1, 9999)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
		assert.False(t, added)
	})

	t.Run("duplicate add conflicts", func(t *testing.T) {
		cartRepo := noopCartRepo()
		cartRepo.addFn = func(context.Context, uint, uint) error {
			return models.NewConflictError("recipe already in shopping cart")
		}
		svc := NewShoppingService(cartRepo, recipeRepo)

		_, err := svc.Add(ctx, 1, 42)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeConflict, appErr.Code)
	})
}

func TestShoppingServiceBuildReport(t *testing.T) {
	ctx := context.Background()

	t.Run("renders aggregated rows in order", func(t *testing.T) {
		cartRepo := noopCartRepo()
		cartRepo.sumIngredientsFn = func(context.Context, uint) ([]repository.IngredientTotal, error) {
			return []repository.IngredientTotal{
				{Name: "flour", MeasurementUnit: "g", Total: 500},
				{Name: "milk", MeasurementUnit: "ml", Total: 50},
			}, nil
		}
		svc := NewShoppingService(cartRepo, noopRecipeRepo())

		report, err := svc.BuildReport(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Shopping list:\nflour - 500 g\nmilk - 50 ml", report)
	})

	t.Run("empty cart yields just the header", func(t *testing.T) {
		svc := NewShoppingService(noopCartRepo(), noopRecipeRepo())

		report, err := svc.BuildReport(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Shopping list:", report)
	})
}
