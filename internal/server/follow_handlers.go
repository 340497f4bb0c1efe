// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"github.com/gofiber/fiber/v2"
)

// Subscribe handles POST /api/users/:id/subscribe
func (s *Server) Subscribe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	authorID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	recipesLimit := c.QueryInt("recipes_limit", 0)
	view, err := s.followService.Subscribe(c.Context(), userID, authorID, recipesLimit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// Unsubscribe handles DELETE /api/users/:id/subscribe
func (s *Server) Unsubscribe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	authorID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.followService.Unsubscribe(c.Context(), userID, authorID); err != nil {
		return respondMembershipError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetSubscriptions handles GET /api/users/subscriptions
func (s *Server) GetSubscriptions(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	p := parsePagination(c, 20)
	recipesLimit := c.QueryInt("recipes_limit", 0)

	views, err := s.followService.Subscriptions(c.Context(), userID, recipesLimit, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(views)
}
