// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"strings"

	"foodgram/internal/models"
	"foodgram/internal/repository"
	"foodgram/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetRecipes handles GET /api/recipes/
// Supported filters: author, tags (repeatable slug), is_favorited,
// is_in_shopping_cart, plus limit/offset pagination.
func (s *Server) GetRecipes(c *fiber.Ctx) error {
	viewer := viewerID(c)
	p := parsePagination(c, 10)

	filter := repository.RecipeFilter{
		Limit:  p.Limit,
		Offset: p.Offset,
	}
	if author := c.QueryInt("author", 0); author > 0 {
		filter.AuthorID = uint(author)
	}
	if tags := c.Query("tags"); tags != "" {
		filter.TagSlugs = strings.Split(tags, ",")
	}
	// Membership filters are viewer-relative and mean nothing to an
	// anonymous caller.
	if viewer != 0 {
		if boolParam(c.Query("is_favorited")) {
			filter.FavoritedBy = viewer
		}
		if boolParam(c.Query("is_in_shopping_cart")) {
			filter.InCartOf = viewer
		}
	}

	views, err := s.recipeService.List(c.Context(), viewer, filter)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(views)
}

// GetRecipe handles GET /api/recipes/:id
func (s *Server) GetRecipe(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	view, err := s.recipeService.Get(c.Context(), viewerID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(view)
}

// CreateRecipe handles POST /api/recipes/
func (s *Server) CreateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var input service.RecipeInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	view, err := s.recipeService.Create(c.Context(), userID, input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// UpdateRecipe handles PATCH /api/recipes/:id
func (s *Server) UpdateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var input service.RecipeInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	view, err := s.recipeService.Update(c.Context(), userID, id, input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(view)
}

// DeleteRecipe handles DELETE /api/recipes/:id
func (s *Server) DeleteRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.recipeService.Delete(c.Context(), userID, id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
