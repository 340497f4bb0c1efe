// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"github.com/gofiber/fiber/v2"
)

// AddFavorite handles POST /api/recipes/:id/favorite
func (s *Server) AddFavorite(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	summary, err := s.favoriteService.Add(c.Context(), userID, recipeID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(summary)
}

// RemoveFavorite handles DELETE /api/recipes/:id/favorite
func (s *Server) RemoveFavorite(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.favoriteService.Remove(c.Context(), userID, recipeID); err != nil {
		return respondMembershipError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddToShoppingCart handles POST /api/recipes/:id/shopping_cart
func (s *Server) AddToShoppingCart(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	summary, err := s.shoppingService.Add(c.Context(), userID, recipeID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(summary)
}

// RemoveFromShoppingCart handles DELETE /api/recipes/:id/shopping_cart
func (s *Server) RemoveFromShoppingCart(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.shoppingService.Remove(c.Context(), userID, recipeID); err != nil {
		return respondMembershipError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadShoppingCart handles GET /api/recipes/download_shopping_cart
func (s *Server) DownloadShoppingCart(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	report, err := s.shoppingService.BuildReport(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="shopping_list.txt"`)
	return c.SendString(report)
}
