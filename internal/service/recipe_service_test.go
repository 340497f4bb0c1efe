package service

import (
	"context"
	"testing"

	"foodgram/internal/models"
	"foodgram/internal/repository"
	"foodgram/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecipeInput() RecipeInput {
	return RecipeInput{
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		Image:       "data:image/png;base64," + pngPayload,
		CookingTime: 20,
		Ingredients: []validation.IngredientAmount{{ID: 1, Amount: 200}},
		TagIDs:      []uint{1},
	}
}

func storedRecipe(id, authorID uint) *models.Recipe {
	return &models.Recipe{
		ID:       id,
		AuthorID: authorID,
		Author:   models.User{ID: authorID, Username: "chef"},
		Name:     "Pancakes",
		Text:     "Mix and fry.",
		Image:    "/media/recipes/x.png",
		Ingredients: []models.RecipeIngredient{
			{IngredientID: 1, Amount: 200, Ingredient: models.Ingredient{ID: 1, Name: "flour", MeasurementUnit: "g"}},
		},
		Tags:        []models.RecipeTag{{TagID: 1, Tag: models.Tag{ID: 1, Slug: "breakfast"}}},
		CookingTime: 20,
	}
}

func testRecipeService(recipeRepo *recipeRepoStub, userRepo *userRepoStub, mediaDir string) *RecipeService {
	return NewRecipeService(
		recipeRepo,
		noopIngredientRepo(),
		noopTagRepo(),
		noopMembershipRepo(),
		noopCartRepo(),
		noopFollowRepo(),
		userRepo,
		mediaDir,
	)
}

func TestRecipeServiceCreate(t *testing.T) {
	recipeRepo := noopRecipeRepo()
	var gotIngredients []models.RecipeIngredient
	var gotTags []models.RecipeTag
	recipeRepo.createFn = func(_ context.Context, r *models.Recipe, ing []models.RecipeIngredient, tags []models.RecipeTag) error {
		r.ID = 42
		gotIngredients = ing
		gotTags = tags
		return nil
	}
	recipeRepo.getByIDFn = func(_ context.Context, id uint) (*models.Recipe, error) {
		return storedRecipe(id, 5), nil
	}
	svc := testRecipeService(recipeRepo, noopUserRepo(), t.TempDir())

	view, err := svc.Create(context.Background(), 5, validRecipeInput())
	require.NoError(t, err)
	assert.EqualValues(t, 42, view.ID)
	assert.Equal(t, "chef", view.Author.Username)
	require.Len(t, gotIngredients, 1)
	assert.EqualValues(t, 1, gotIngredients[0].IngredientID)
	assert.Equal(t, 200, gotIngredients[0].Amount)
	require.Len(t, gotTags, 1)
	assert.EqualValues(t, 1, gotTags[0].TagID)
}

func TestRecipeServiceCreateValidation(t *testing.T) {
	svc := testRecipeService(noopRecipeRepo(), noopUserRepo(), t.TempDir())
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*RecipeInput)
		want   string
	}{
		{"missing name", func(in *RecipeInput) { in.Name = "  " }, "name is required"},
		{"missing text", func(in *RecipeInput) { in.Text = "" }, "text is required"},
		{"missing image", func(in *RecipeInput) { in.Image = "" }, "image is required"},
		{"no ingredients", func(in *RecipeInput) { in.Ingredients = nil }, "at least one ingredient"},
		{"no tags", func(in *RecipeInput) { in.TagIDs = nil }, "at least one tag"},
		{"amount out of range", func(in *RecipeInput) {
			in.Ingredients = []validation.IngredientAmount{{ID: 1, Amount: models.MaxAmount + 1}}
		}, "amount must be between"},
		{"cooking time out of range", func(in *RecipeInput) { in.CookingTime = 0 }, "cooking time must be between"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validRecipeInput()
			tc.mutate(&in)
			_, err := svc.Create(ctx, 5, in)
			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, models.CodeValidation, appErr.Code)
			assert.Contains(t, appErr.Message, tc.want)
		})
	}
}

func TestRecipeServiceCreateUnknownCatalogIDs(t *testing.T) {
	recipeRepo := noopRecipeRepo()
	svc := NewRecipeService(
		recipeRepo,
		&ingredientRepoStub{
			getByIDsFn: func(context.Context, []uint) ([]models.Ingredient, error) { return nil, nil },
		},
		noopTagRepo(),
		noopMembershipRepo(),
		noopCartRepo(),
		noopFollowRepo(),
		noopUserRepo(),
		t.TempDir(),
	)

	_, err := svc.Create(context.Background(), 5, validRecipeInput())
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
	assert.Contains(t, appErr.Message, "not found")
}

func TestRecipeServiceUpdateAuthorization(t *testing.T) {
	recipeRepo := noopRecipeRepo()
	recipeRepo.getByIDFn = func(_ context.Context, id uint) (*models.Recipe, error) {
		return storedRecipe(id, 5), nil
	}
	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		if id == 99 {
			return &models.User{ID: 99, Role: models.RoleAdmin}, nil
		}
		return &models.User{ID: id, Role: models.RoleUser}, nil
	}
	svc := testRecipeService(recipeRepo, userRepo, t.TempDir())
	ctx := context.Background()

	t.Run("stranger cannot edit", func(t *testing.T) {
		_, err := svc.Update(ctx, 6, 42, validRecipeInput())
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeUnauthorized, appErr.Code)
		assert.Contains(t, appErr.Message, "only the author")
	})

	t.Run("author can edit", func(t *testing.T) {
		_, err := svc.Update(ctx, 5, 42, validRecipeInput())
		assert.NoError(t, err)
	})

	t.Run("admin can edit", func(t *testing.T) {
		_, err := svc.Update(ctx, 99, 42, validRecipeInput())
		assert.NoError(t, err)
	})

	t.Run("stranger cannot delete", func(t *testing.T) {
		err := svc.Delete(ctx, 6, 42)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.CodeUnauthorized, appErr.Code)
	})

	t.Run("admin can delete", func(t *testing.T) {
		assert.NoError(t, svc.Delete(ctx, 99, 42))
	})
}

func TestRecipeServiceUpdateKeepsImageWhenOmitted(t *testing.T) {
	recipeRepo := noopRecipeRepo()
	recipeRepo.getByIDFn = func(_ context.Context, id uint) (*models.Recipe, error) {
		return storedRecipe(id, 5), nil
	}
	var saved *models.Recipe
	recipeRepo.replaceCompositionFn = func(_ context.Context, r *models.Recipe, _ []models.RecipeIngredient, _ []models.RecipeTag) error {
		saved = r
		return nil
	}
	svc := testRecipeService(recipeRepo, noopUserRepo(), t.TempDir())

	in := validRecipeInput()
	in.Image = ""
	_, err := svc.Update(context.Background(), 5, 42, in)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "/media/recipes/x.png", saved.Image)
	assert.Nil(t, saved.Ingredients)
	assert.Nil(t, saved.Tags)
}

func TestRecipeServiceGetViewerFlags(t *testing.T) {
	recipeRepo := noopRecipeRepo()
	recipeRepo.getByIDFn = func(_ context.Context, id uint) (*models.Recipe, error) {
		return storedRecipe(id, 5), nil
	}
	favoriteRepo := noopMembershipRepo()
	favoriteRepo.existsFn = func(context.Context, uint, uint) (bool, error) { return true, nil }
	cartRepo := noopCartRepo()
	cartRepo.existsFn = func(context.Context, uint, uint) (bool, error) { return true, nil }
	followRepo := noopFollowRepo()
	followRepo.existsFn = func(context.Context, uint, uint) (bool, error) { return true, nil }

	svc := NewRecipeService(
		recipeRepo,
		noopIngredientRepo(),
		noopTagRepo(),
		favoriteRepo,
		cartRepo,
		followRepo,
		noopUserRepo(),
		t.TempDir(),
	)
	ctx := context.Background()

	t.Run("anonymous viewer sees false flags", func(t *testing.T) {
		view, err := svc.Get(ctx, 0, 42)
		require.NoError(t, err)
		assert.False(t, view.IsFavorited)
		assert.False(t, view.IsInShoppingCart)
		assert.False(t, view.Author.IsSubscribed)
	})

	t.Run("authenticated viewer sees real flags", func(t *testing.T) {
		view, err := svc.Get(ctx, 9, 42)
		require.NoError(t, err)
		assert.True(t, view.IsFavorited)
		assert.True(t, view.IsInShoppingCart)
		assert.True(t, view.Author.IsSubscribed)
	})

	t.Run("author is never subscribed to themselves", func(t *testing.T) {
		view, err := svc.Get(ctx, 5, 42)
		require.NoError(t, err)
		assert.False(t, view.Author.IsSubscribed)
	})
}

func TestRecipeServiceListHydration(t *testing.T) {
	recipeRepo := noopRecipeRepo()
	recipeRepo.listFn = func(context.Context, repository.RecipeFilter) ([]models.Recipe, error) {
		return []models.Recipe{*storedRecipe(1, 5), *storedRecipe(2, 6)}, nil
	}
	favoriteRepo := noopMembershipRepo()
	favoriteRepo.recipeIDsFn = func(context.Context, uint) (map[uint]struct{}, error) {
		return map[uint]struct{}{1: {}}, nil
	}
	cartRepo := noopCartRepo()
	cartRepo.recipeIDsFn = func(context.Context, uint) (map[uint]struct{}, error) {
		return map[uint]struct{}{2: {}}, nil
	}
	followRepo := noopFollowRepo()
	followRepo.authorIDsFn = func(context.Context, uint) (map[uint]struct{}, error) {
		return map[uint]struct{}{6: {}}, nil
	}

	svc := NewRecipeService(
		recipeRepo,
		noopIngredientRepo(),
		noopTagRepo(),
		favoriteRepo,
		cartRepo,
		followRepo,
		noopUserRepo(),
		t.TempDir(),
	)

	views, err := svc.List(context.Background(), 9, repository.RecipeFilter{})
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.True(t, views[0].IsFavorited)
	assert.False(t, views[0].IsInShoppingCart)
	assert.False(t, views[0].Author.IsSubscribed)

	assert.False(t, views[1].IsFavorited)
	assert.True(t, views[1].IsInShoppingCart)
	assert.True(t, views[1].Author.IsSubscribed)
}
