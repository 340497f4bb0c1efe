package service

import (
	"context"
	"strings"

	"foodgram/internal/cache"
	"foodgram/internal/models"
	"foodgram/internal/repository"
)

// CatalogService serves the ingredient and tag reference data. List
// reads go through the Redis cache when one is configured; catalog
// writes invalidate it.
type CatalogService struct {
	ingredientRepo repository.IngredientRepository
	tagRepo        repository.TagRepository
}

// NewCatalogService returns a new CatalogService.
func NewCatalogService(ingredientRepo repository.IngredientRepository, tagRepo repository.TagRepository) *CatalogService {
	return &CatalogService{
		ingredientRepo: ingredientRepo,
		tagRepo:        tagRepo,
	}
}

// ListIngredients returns ingredients ordered by name, optionally
// narrowed to a case-insensitive name prefix.
func (s *CatalogService) ListIngredients(ctx context.Context, namePrefix string) ([]models.Ingredient, error) {
	key := cache.IngredientSearchKey(strings.ToLower(namePrefix))
	var cached []models.Ingredient
	if cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	ingredients, err := s.ingredientRepo.List(ctx, namePrefix)
	if err != nil {
		return nil, err
	}
	cache.SetJSON(ctx, key, ingredients, cache.IngredientSearchTTL)
	return ingredients, nil
}

// GetIngredient returns a single ingredient by ID.
func (s *CatalogService) GetIngredient(ctx context.Context, id uint) (*models.Ingredient, error) {
	return s.ingredientRepo.GetByID(ctx, id)
}

// CreateIngredient adds an ingredient to the catalog. The (name, unit)
// pair must be unique.
func (s *CatalogService) CreateIngredient(ctx context.Context, ingredient *models.Ingredient) error {
	if strings.TrimSpace(ingredient.Name) == "" {
		return models.NewValidationError("ingredient name is required")
	}
	if strings.TrimSpace(ingredient.MeasurementUnit) == "" {
		return models.NewValidationError("measurement unit is required")
	}
	if err := s.ingredientRepo.Create(ctx, ingredient); err != nil {
		return err
	}
	cache.InvalidateIngredients(ctx)
	return nil
}

// ListTags returns every tag.
func (s *CatalogService) ListTags(ctx context.Context) ([]models.Tag, error) {
	var cached []models.Tag
	if cache.GetJSON(ctx, cache.TagListKey, &cached) {
		return cached, nil
	}

	tags, err := s.tagRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	cache.SetJSON(ctx, cache.TagListKey, tags, cache.TagListTTL)
	return tags, nil
}

// GetTag returns a single tag by ID.
func (s *CatalogService) GetTag(ctx context.Context, id uint) (*models.Tag, error) {
	return s.tagRepo.GetByID(ctx, id)
}

// CreateTag adds a tag to the catalog. Name and slug must be unique.
func (s *CatalogService) CreateTag(ctx context.Context, tag *models.Tag) error {
	if strings.TrimSpace(tag.Name) == "" {
		return models.NewValidationError("tag name is required")
	}
	if strings.TrimSpace(tag.Slug) == "" {
		return models.NewValidationError("tag slug is required")
	}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return err
	}
	cache.InvalidateTags(ctx)
	return nil
}
