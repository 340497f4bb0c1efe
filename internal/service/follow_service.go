package service

import (
	"context"

	"foodgram/internal/models"
	"foodgram/internal/repository"
)

// FollowService provides subscription business logic.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	recipeRepo repository.RecipeRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository, recipeRepo repository.RecipeRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
		recipeRepo: recipeRepo,
	}
}

// Subscribe creates a follow edge from the follower to the author and
// returns the author annotated with their recipes. Self-subscription
// is invalid and duplicates are conflicts.
func (s *FollowService) Subscribe(ctx context.Context, followerID, authorID uint, recipesLimit int) (*models.SubscriptionView, error) {
	if followerID == authorID {
		return nil, models.NewValidationError("cannot subscribe to yourself")
	}

	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	follow := &models.Follow{FollowerID: followerID, AuthorID: authorID}
	if err := s.followRepo.Create(ctx, follow); err != nil {
		return nil, err
	}

	return s.subscriptionView(ctx, author, recipesLimit)
}

// Unsubscribe removes the follow edge. Removing an edge that does not
// exist fails.
func (s *FollowService) Unsubscribe(ctx context.Context, followerID, authorID uint) error {
	return s.followRepo.Delete(ctx, followerID, authorID)
}

// Subscriptions returns the authors the user follows, each annotated
// with a truncated recipe list and the untruncated recipe count.
func (s *FollowService) Subscriptions(ctx context.Context, userID uint, recipesLimit, limit, offset int) ([]models.SubscriptionView, error) {
	authors, err := s.followRepo.Following(ctx, userID)
	if err != nil {
		return nil, err
	}

	if offset > 0 {
		if offset >= len(authors) {
			authors = nil
		} else {
			authors = authors[offset:]
		}
	}
	if limit > 0 && limit < len(authors) {
		authors = authors[:limit]
	}

	views := make([]models.SubscriptionView, 0, len(authors))
	for i := range authors {
		view, err := s.subscriptionView(ctx, &authors[i], recipesLimit)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *FollowService) subscriptionView(ctx context.Context, author *models.User, recipesLimit int) (*models.SubscriptionView, error) {
	recipes, err := s.recipeRepo.ListByAuthor(ctx, author.ID, recipesLimit)
	if err != nil {
		return nil, err
	}
	count, err := s.recipeRepo.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.RecipeSummary, 0, len(recipes))
	for i := range recipes {
		summaries = append(summaries, models.NewRecipeSummary(&recipes[i]))
	}

	return &models.SubscriptionView{
		UserView:     models.NewUserView(author, true),
		Recipes:      summaries,
		RecipesCount: count,
	}, nil
}
