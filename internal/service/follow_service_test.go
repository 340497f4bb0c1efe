package service

import (
	"context"
	"testing"

	"foodgram/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowServiceSubscribeSelf(t *testing.T) {
	svc := NewFollowService(noopFollowRepo(), noopUserRepo(), noopRecipeRepo())

	_, err := svc.Subscribe(context.Background(), 3, 3, 0)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
	assert.Contains(t, appErr.Message, "yourself")
}

func TestFollowServiceSubscribeUnknownAuthor(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}
	svc := NewFollowService(noopFollowRepo(), userRepo, noopRecipeRepo())

	_, err := svc.Subscribe(context.Background(), 3, 9999, 0)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestFollowServiceSubscribeDuplicate(t *testing.T) {
	followRepo := noopFollowRepo()
	followRepo.createFn = func(context.Context, *models.Follow) error {
		return models.NewConflictError("subscription already exists")
	}
	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id}, nil
	}
	svc := NewFollowService(followRepo, userRepo, noopRecipeRepo())

	_, err := svc.Subscribe(context.Background(), 3, 5, 0)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeConflict, appErr.Code)
}

func TestFollowServiceSubscribe(t *testing.T) {
	followRepo := noopFollowRepo()
	var created *models.Follow
	followRepo.createFn = func(_ context.Context, f *models.Follow) error {
		created = f
		return nil
	}
	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Username: "chef"}, nil
	}
	recipeRepo := noopRecipeRepo()
	recipeRepo.listByAuthorFn = func(_ context.Context, authorID uint, limit int) ([]models.Recipe, error) {
		assert.Equal(t, 3, limit)
		return []models.Recipe{{ID: 1, AuthorID: authorID, Name: "Soup"}}, nil
	}
	recipeRepo.countByAuthorFn = func(context.Context, uint) (int64, error) { return 12, nil }
	svc := NewFollowService(followRepo, userRepo, recipeRepo)

	view, err := svc.Subscribe(context.Background(), 3, 5, 3)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.EqualValues(t, 3, created.FollowerID)
	assert.EqualValues(t, 5, created.AuthorID)

	assert.Equal(t, "chef", view.Username)
	assert.True(t, view.IsSubscribed)
	require.Len(t, view.Recipes, 1)
	assert.Equal(t, "Soup", view.Recipes[0].Name)
	assert.EqualValues(t, 12, view.RecipesCount)
}

func TestFollowServiceUnsubscribeMissing(t *testing.T) {
	followRepo := noopFollowRepo()
	followRepo.deleteFn = func(context.Context, uint, uint) error {
		return models.NewNotFoundError("Subscription", 5)
	}
	svc := NewFollowService(followRepo, noopUserRepo(), noopRecipeRepo())

	err := svc.Unsubscribe(context.Background(), 3, 5)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestFollowServiceSubscriptionsPaging(t *testing.T) {
	followRepo := noopFollowRepo()
	followRepo.followingFn = func(context.Context, uint) ([]models.User, error) {
		return []models.User{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}, nil
	}
	svc := NewFollowService(followRepo, noopUserRepo(), noopRecipeRepo())
	ctx := context.Background()

	t.Run("limit and offset slice the author list", func(t *testing.T) {
		views, err := svc.Subscriptions(ctx, 9, 0, 2, 1)
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.EqualValues(t, 2, views[0].ID)
		assert.EqualValues(t, 3, views[1].ID)
	})

	t.Run("offset past the end is empty", func(t *testing.T) {
		views, err := svc.Subscriptions(ctx, 9, 0, 10, 99)
		require.NoError(t, err)
		assert.Empty(t, views)
	})

	t.Run("every row is marked subscribed", func(t *testing.T) {
		views, err := svc.Subscriptions(ctx, 9, 0, 10, 0)
		require.NoError(t, err)
		require.Len(t, views, 4)
		for _, v := range views {
			assert.True(t, v.IsSubscribed)
		}
	})
}
