// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /api/users/
func (s *Server) GetUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	views, err := s.userService.ListUsers(c.Context(), viewerID(c), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(views)
}

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	view, err := s.userService.GetProfile(c.Context(), userID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(view)
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	view, err := s.userService.GetProfile(c.Context(), viewerID(c), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(view)
}
