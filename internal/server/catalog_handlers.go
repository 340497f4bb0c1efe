// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"foodgram/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetTags handles GET /api/tags/
func (s *Server) GetTags(c *fiber.Ctx) error {
	tags, err := s.catalogService.ListTags(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(tags)
}

// GetTag handles GET /api/tags/:id
func (s *Server) GetTag(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	tag, err := s.catalogService.GetTag(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(tag)
}

// CreateTag handles POST /api/tags/ (admin only)
func (s *Server) CreateTag(c *fiber.Ctx) error {
	var tag models.Tag
	if err := c.BodyParser(&tag); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	tag.ID = 0

	if err := s.catalogService.CreateTag(c.Context(), &tag); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tag)
}

// GetIngredients handles GET /api/ingredients/?name=<prefix>
func (s *Server) GetIngredients(c *fiber.Ctx) error {
	ingredients, err := s.catalogService.ListIngredients(c.Context(), c.Query("name"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(ingredients)
}

// GetIngredient handles GET /api/ingredients/:id
func (s *Server) GetIngredient(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	ingredient, err := s.catalogService.GetIngredient(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(ingredient)
}

// CreateIngredient handles POST /api/ingredients/ (admin only)
func (s *Server) CreateIngredient(c *fiber.Ctx) error {
	var ingredient models.Ingredient
	if err := c.BodyParser(&ingredient); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	ingredient.ID = 0

	if err := s.catalogService.CreateIngredient(c.Context(), &ingredient); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ingredient)
}
