package service

import (
	"context"

	"foodgram/internal/models"
	"foodgram/internal/repository"
)

type userRepoStub struct {
	createFn         func(context.Context, *models.User) error
	getByIDFn        func(context.Context, uint) (*models.User, error)
	getByEmailFn     func(context.Context, string) (*models.User, error)
	getByUsernameFn  func(context.Context, string) (*models.User, error)
	listFn           func(context.Context, int, int) ([]models.User, error)
	updatePasswordFn func(context.Context, uint, string) error
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) UpdatePassword(ctx context.Context, id uint, hashed string) error {
	return s.updatePasswordFn(ctx, id, hashed)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:         func(context.Context, *models.User) error { return nil },
		getByIDFn:        func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:     func(context.Context, string) (*models.User, error) { return nil, nil },
		getByUsernameFn:  func(context.Context, string) (*models.User, error) { return nil, nil },
		listFn:           func(context.Context, int, int) ([]models.User, error) { return nil, nil },
		updatePasswordFn: func(context.Context, uint, string) error { return nil },
	}
}

type followRepoStub struct {
	createFn    func(context.Context, *models.Follow) error
	deleteFn    func(context.Context, uint, uint) error
	existsFn    func(context.Context, uint, uint) (bool, error)
	followingFn func(context.Context, uint) ([]models.User, error)
	authorIDsFn func(context.Context, uint) (map[uint]struct{}, error)
}

func (s *followRepoStub) Create(ctx context.Context, follow *models.Follow) error {
	return s.createFn(ctx, follow)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, authorID uint) error {
	return s.deleteFn(ctx, followerID, authorID)
}
func (s *followRepoStub) Exists(ctx context.Context, followerID, authorID uint) (bool, error) {
	return s.existsFn(ctx, followerID, authorID)
}
func (s *followRepoStub) Following(ctx context.Context, followerID uint) ([]models.User, error) {
	return s.followingFn(ctx, followerID)
}
func (s *followRepoStub) AuthorIDs(ctx context.Context, followerID uint) (map[uint]struct{}, error) {
	return s.authorIDsFn(ctx, followerID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn:    func(context.Context, *models.Follow) error { return nil },
		deleteFn:    func(context.Context, uint, uint) error { return nil },
		existsFn:    func(context.Context, uint, uint) (bool, error) { return false, nil },
		followingFn: func(context.Context, uint) ([]models.User, error) { return nil, nil },
		authorIDsFn: func(context.Context, uint) (map[uint]struct{}, error) { return map[uint]struct{}{}, nil },
	}
}

type recipeRepoStub struct {
	createFn             func(context.Context, *models.Recipe, []models.RecipeIngredient, []models.RecipeTag) error
	replaceCompositionFn func(context.Context, *models.Recipe, []models.RecipeIngredient, []models.RecipeTag) error
	deleteFn             func(context.Context, uint) error
	getByIDFn            func(context.Context, uint) (*models.Recipe, error)
	listFn               func(context.Context, repository.RecipeFilter) ([]models.Recipe, error)
	listByAuthorFn       func(context.Context, uint, int) ([]models.Recipe, error)
	countByAuthorFn      func(context.Context, uint) (int64, error)
}

func (s *recipeRepoStub) Create(ctx context.Context, r *models.Recipe, ing []models.RecipeIngredient, tags []models.RecipeTag) error {
	return s.createFn(ctx, r, ing, tags)
}
func (s *recipeRepoStub) ReplaceComposition(ctx context.Context, r *models.Recipe, ing []models.RecipeIngredient, tags []models.RecipeTag) error {
	return s.replaceCompositionFn(ctx, r, ing, tags)
}
func (s *recipeRepoStub) Delete(ctx context.Context, recipeID uint) error {
	return s.deleteFn(ctx, recipeID)
}
func (s *recipeRepoStub) GetByID(ctx context.Context, id uint) (*models.Recipe, error) {
	return s.getByIDFn(ctx, id)
}
func (s *recipeRepoStub) List(ctx context.Context, filter repository.RecipeFilter) ([]models.Recipe, error) {
	return s.listFn(ctx, filter)
}
func (s *recipeRepoStub) ListByAuthor(ctx context.Context, authorID uint, limit int) ([]models.Recipe, error) {
	return s.listByAuthorFn(ctx, authorID, limit)
}
func (s *recipeRepoStub) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	return s.countByAuthorFn(ctx, authorID)
}

func noopRecipeRepo() *recipeRepoStub {
	return &recipeRepoStub{
		createFn: func(context.Context, *models.Recipe, []models.RecipeIngredient, []models.RecipeTag) error {
			return nil
		},
		replaceCompositionFn: func(context.Context, *models.Recipe, []models.RecipeIngredient, []models.RecipeTag) error {
			return nil
		},
		deleteFn:        func(context.Context, uint) error { return nil },
		getByIDFn:       func(context.Context, uint) (*models.Recipe, error) { return &models.Recipe{}, nil },
		listFn:          func(context.Context, repository.RecipeFilter) ([]models.Recipe, error) { return nil, nil },
		listByAuthorFn:  func(context.Context, uint, int) ([]models.Recipe, error) { return nil, nil },
		countByAuthorFn: func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

type membershipRepoStub struct {
	addFn       func(context.Context, uint, uint) error
	removeFn    func(context.Context, uint, uint) error
	existsFn    func(context.Context, uint, uint) (bool, error)
	recipeIDsFn func(context.Context, uint) (map[uint]struct{}, error)
}

func (s *membershipRepoStub) Add(ctx context.Context, userID, recipeID uint) error {
	return s.addFn(ctx, userID, recipeID)
}
func (s *membershipRepoStub) Remove(ctx context.Context, userID, recipeID uint) error {
	return s.removeFn(ctx, userID, recipeID)
}
func (s *membershipRepoStub) Exists(ctx context.Context, userID, recipeID uint) (bool, error) {
	return s.existsFn(ctx, userID, recipeID)
}
func (s *membershipRepoStub) RecipeIDs(ctx context.Context, userID uint) (map[uint]struct{}, error) {
	return s.recipeIDsFn(ctx, userID)
}

func noopMembershipRepo() *membershipRepoStub {
	return &membershipRepoStub{
		addFn:       func(context.Context, uint, uint) error { return nil },
		removeFn:    func(context.Context, uint, uint) error { return nil },
		existsFn:    func(context.Context, uint, uint) (bool, error) { return false, nil },
		recipeIDsFn: func(context.Context, uint) (map[uint]struct{}, error) { return map[uint]struct{}{}, nil },
	}
}

// cartRepoStub extends the membership surface with the aggregation query.
type cartRepoStub struct {
	membershipRepoStub
	sumIngredientsFn func(context.Context, uint) ([]repository.IngredientTotal, error)
}

func (s *cartRepoStub) SumIngredients(ctx context.Context, userID uint) ([]repository.IngredientTotal, error) {
	return s.sumIngredientsFn(ctx, userID)
}

func noopCartRepo() *cartRepoStub {
	return &cartRepoStub{
		membershipRepoStub: *noopMembershipRepo(),
		sumIngredientsFn: func(context.Context, uint) ([]repository.IngredientTotal, error) {
			return nil, nil
		},
	}
}

type ingredientRepoStub struct {
	createFn   func(context.Context, *models.Ingredient) error
	getByIDFn  func(context.Context, uint) (*models.Ingredient, error)
	getByIDsFn func(context.Context, []uint) ([]models.Ingredient, error)
	listFn     func(context.Context, string) ([]models.Ingredient, error)
}

func (s *ingredientRepoStub) Create(ctx context.Context, ingredient *models.Ingredient) error {
	return s.createFn(ctx, ingredient)
}
func (s *ingredientRepoStub) GetByID(ctx context.Context, id uint) (*models.Ingredient, error) {
	return s.getByIDFn(ctx, id)
}
func (s *ingredientRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]models.Ingredient, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *ingredientRepoStub) List(ctx context.Context, namePrefix string) ([]models.Ingredient, error) {
	return s.listFn(ctx, namePrefix)
}

func noopIngredientRepo() *ingredientRepoStub {
	return &ingredientRepoStub{
		createFn:  func(context.Context, *models.Ingredient) error { return nil },
		getByIDFn: func(context.Context, uint) (*models.Ingredient, error) { return &models.Ingredient{}, nil },
		getByIDsFn: func(_ context.Context, ids []uint) ([]models.Ingredient, error) {
			out := make([]models.Ingredient, 0, len(ids))
			for _, id := range ids {
				out = append(out, models.Ingredient{ID: id})
			}
			return out, nil
		},
		listFn: func(context.Context, string) ([]models.Ingredient, error) { return nil, nil },
	}
}

type tagRepoStub struct {
	createFn   func(context.Context, *models.Tag) error
	getByIDFn  func(context.Context, uint) (*models.Tag, error)
	getByIDsFn func(context.Context, []uint) ([]models.Tag, error)
	listFn     func(context.Context) ([]models.Tag, error)
}

func (s *tagRepoStub) Create(ctx context.Context, tag *models.Tag) error {
	return s.createFn(ctx, tag)
}
func (s *tagRepoStub) GetByID(ctx context.Context, id uint) (*models.Tag, error) {
	return s.getByIDFn(ctx, id)
}
func (s *tagRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]models.Tag, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *tagRepoStub) List(ctx context.Context) ([]models.Tag, error) {
	return s.listFn(ctx)
}

func noopTagRepo() *tagRepoStub {
	return &tagRepoStub{
		createFn:  func(context.Context, *models.Tag) error { return nil },
		getByIDFn: func(context.Context, uint) (*models.Tag, error) { return &models.Tag{}, nil },
		getByIDsFn: func(_ context.Context, ids []uint) ([]models.Tag, error) {
			out := make([]models.Tag, 0, len(ids))
			for _, id := range ids {
				out = append(out, models.Tag{ID: id})
			}
			return out, nil
		},
		listFn: func(context.Context) ([]models.Tag, error) { return nil, nil },
	}
}
