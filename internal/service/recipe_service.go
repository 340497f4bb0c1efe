package service

import (
	"context"
	"strings"

	"foodgram/internal/models"
	"foodgram/internal/observability"
	"foodgram/internal/repository"
	"foodgram/internal/validation"
)

// RecipeInput carries the fields of a recipe create or update request.
// Image is a base64 data URL; on update an empty image keeps the
// current one.
type RecipeInput struct {
	Name        string                        `json:"name"`
	Text        string                        `json:"text"`
	Image       string                        `json:"image"`
	CookingTime int                           `json:"cooking_time"`
	Ingredients []validation.IngredientAmount `json:"ingredients"`
	TagIDs      []uint                        `json:"tags"`
}

// RecipeService provides recipe aggregate business logic.
type RecipeService struct {
	recipeRepo     repository.RecipeRepository
	ingredientRepo repository.IngredientRepository
	tagRepo        repository.TagRepository
	favoriteRepo   repository.FavoriteRepository
	cartRepo       repository.ShoppingCartRepository
	followRepo     repository.FollowRepository
	userRepo       repository.UserRepository
	mediaDir       string
}

// NewRecipeService returns a new RecipeService.
func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	ingredientRepo repository.IngredientRepository,
	tagRepo repository.TagRepository,
	favoriteRepo repository.FavoriteRepository,
	cartRepo repository.ShoppingCartRepository,
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	mediaDir string,
) *RecipeService {
	return &RecipeService{
		recipeRepo:     recipeRepo,
		ingredientRepo: ingredientRepo,
		tagRepo:        tagRepo,
		favoriteRepo:   favoriteRepo,
		cartRepo:       cartRepo,
		followRepo:     followRepo,
		userRepo:       userRepo,
		mediaDir:       mediaDir,
	}
}

// Create validates the input against the ingredient and tag catalogs
// and persists the recipe together with its composition in one
// transaction.
func (s *RecipeService) Create(ctx context.Context, authorID uint, input RecipeInput) (*models.RecipeView, error) {
	if err := s.validateScalars(input); err != nil {
		return nil, err
	}
	if err := s.validateComposition(ctx, input); err != nil {
		return nil, err
	}
	if input.Image == "" {
		return nil, models.NewValidationError("image is required")
	}

	imagePath, err := storeDataURLImage(s.mediaDir, input.Image)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		AuthorID:    authorID,
		Name:        strings.TrimSpace(input.Name),
		Text:        input.Text,
		Image:       imagePath,
		CookingTime: input.CookingTime,
	}
	ingredients, tags := buildLinks(input)

	if err := s.recipeRepo.Create(ctx, recipe, ingredients, tags); err != nil {
		return nil, err
	}
	observability.RecipesCreatedTotal.Inc()

	return s.Get(ctx, authorID, recipe.ID)
}

// Update replaces the recipe's fields and its whole composition.
// Only the author or an admin may edit.
func (s *RecipeService) Update(ctx context.Context, viewerID, recipeID uint, input RecipeInput) (*models.RecipeView, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if err := s.requireAuthorOrAdmin(ctx, viewerID, recipe.AuthorID, "edit"); err != nil {
		return nil, err
	}
	if err := s.validateScalars(input); err != nil {
		return nil, err
	}
	if err := s.validateComposition(ctx, input); err != nil {
		return nil, err
	}

	if input.Image != "" {
		imagePath, err := storeDataURLImage(s.mediaDir, input.Image)
		if err != nil {
			return nil, err
		}
		recipe.Image = imagePath
	}
	recipe.Name = strings.TrimSpace(input.Name)
	recipe.Text = input.Text
	recipe.CookingTime = input.CookingTime
	// Detach preloaded associations so Save only touches scalar columns.
	recipe.Ingredients = nil
	recipe.Tags = nil

	ingredients, tags := buildLinks(input)
	if err := s.recipeRepo.ReplaceComposition(ctx, recipe, ingredients, tags); err != nil {
		return nil, err
	}

	return s.Get(ctx, viewerID, recipe.ID)
}

// Delete removes the recipe with its composition and every favorite
// and cart row referencing it. Only the author or an admin may delete.
func (s *RecipeService) Delete(ctx context.Context, viewerID, recipeID uint) error {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		return err
	}
	if err := s.requireAuthorOrAdmin(ctx, viewerID, recipe.AuthorID, "delete"); err != nil {
		return err
	}
	return s.recipeRepo.Delete(ctx, recipeID)
}

// Get returns the hydrated recipe as seen by the viewer. Anonymous
// viewers always see false membership flags.
func (s *RecipeService) Get(ctx context.Context, viewerID, recipeID uint) (*models.RecipeView, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	var favorited, inCart, subscribed bool
	if viewerID != 0 {
		if favorited, err = s.favoriteRepo.Exists(ctx, viewerID, recipeID); err != nil {
			return nil, err
		}
		if inCart, err = s.cartRepo.Exists(ctx, viewerID, recipeID); err != nil {
			return nil, err
		}
		if viewerID != recipe.AuthorID {
			if subscribed, err = s.followRepo.Exists(ctx, viewerID, recipe.AuthorID); err != nil {
				return nil, err
			}
		}
	}

	view := hydrateRecipe(recipe, favorited, inCart, subscribed)
	return &view, nil
}

// List returns hydrated recipes matching the filter, newest first.
func (s *RecipeService) List(ctx context.Context, viewerID uint, filter repository.RecipeFilter) ([]models.RecipeView, error) {
	recipes, err := s.recipeRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	favorites := map[uint]struct{}{}
	cart := map[uint]struct{}{}
	following := map[uint]struct{}{}
	if viewerID != 0 {
		if favorites, err = s.favoriteRepo.RecipeIDs(ctx, viewerID); err != nil {
			return nil, err
		}
		if cart, err = s.cartRepo.RecipeIDs(ctx, viewerID); err != nil {
			return nil, err
		}
		if following, err = s.followRepo.AuthorIDs(ctx, viewerID); err != nil {
			return nil, err
		}
	}

	views := make([]models.RecipeView, 0, len(recipes))
	for i := range recipes {
		r := &recipes[i]
		_, favorited := favorites[r.ID]
		_, inCart := cart[r.ID]
		_, subscribed := following[r.AuthorID]
		views = append(views, hydrateRecipe(r, favorited, inCart, subscribed))
	}
	return views, nil
}

func (s *RecipeService) validateScalars(input RecipeInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.NewValidationError("name is required")
	}
	if len(name) > 200 {
		return models.NewValidationError("name must not exceed 200 characters")
	}
	if strings.TrimSpace(input.Text) == "" {
		return models.NewValidationError("text is required")
	}
	return nil
}

func (s *RecipeService) validateComposition(ctx context.Context, input RecipeInput) error {
	catalog, err := s.loadCatalog(ctx, input)
	if err != nil {
		return err
	}
	comp := validation.Composition{
		Ingredients: input.Ingredients,
		TagIDs:      input.TagIDs,
		CookingTime: input.CookingTime,
	}
	if err := validation.ValidateComposition(comp, catalog); err != nil {
		return models.NewValidationError(err.Error())
	}
	return nil
}

func (s *RecipeService) loadCatalog(ctx context.Context, input RecipeInput) (validation.CompositionCatalog, error) {
	catalog := validation.CompositionCatalog{
		KnownIngredients: map[uint]struct{}{},
		KnownTags:        map[uint]struct{}{},
	}

	ingredientIDs := make([]uint, 0, len(input.Ingredients))
	for _, ing := range input.Ingredients {
		ingredientIDs = append(ingredientIDs, ing.ID)
	}
	ingredients, err := s.ingredientRepo.GetByIDs(ctx, ingredientIDs)
	if err != nil {
		return catalog, err
	}
	for _, ing := range ingredients {
		catalog.KnownIngredients[ing.ID] = struct{}{}
	}

	tags, err := s.tagRepo.GetByIDs(ctx, input.TagIDs)
	if err != nil {
		return catalog, err
	}
	for _, tag := range tags {
		catalog.KnownTags[tag.ID] = struct{}{}
	}
	return catalog, nil
}

func (s *RecipeService) requireAuthorOrAdmin(ctx context.Context, viewerID, authorID uint, action string) error {
	if viewerID == authorID {
		return nil
	}
	viewer, err := s.userRepo.GetByID(ctx, viewerID)
	if err != nil {
		return err
	}
	if !viewer.IsAdmin() {
		return models.NewUnauthorizedError("only the author can " + action + " a recipe")
	}
	return nil
}

func buildLinks(input RecipeInput) ([]models.RecipeIngredient, []models.RecipeTag) {
	ingredients := make([]models.RecipeIngredient, 0, len(input.Ingredients))
	for _, ing := range input.Ingredients {
		ingredients = append(ingredients, models.RecipeIngredient{
			IngredientID: ing.ID,
			Amount:       ing.Amount,
		})
	}
	tags := make([]models.RecipeTag, 0, len(input.TagIDs))
	for _, tagID := range input.TagIDs {
		tags = append(tags, models.RecipeTag{TagID: tagID})
	}
	return ingredients, tags
}

func hydrateRecipe(r *models.Recipe, favorited, inCart, authorSubscribed bool) models.RecipeView {
	ingredients := make([]models.IngredientAmountView, 0, len(r.Ingredients))
	for _, link := range r.Ingredients {
		ingredients = append(ingredients, models.IngredientAmountView{
			ID:              link.IngredientID,
			Name:            link.Ingredient.Name,
			MeasurementUnit: link.Ingredient.MeasurementUnit,
			Amount:          link.Amount,
		})
	}
	tags := make([]models.Tag, 0, len(r.Tags))
	for _, link := range r.Tags {
		tags = append(tags, link.Tag)
	}
	return models.RecipeView{
		ID:               r.ID,
		Tags:             tags,
		Author:           models.NewUserView(&r.Author, authorSubscribed),
		Ingredients:      ingredients,
		IsFavorited:      favorited,
		IsInShoppingCart: inCart,
		Name:             r.Name,
		Image:            r.Image,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
	}
}
