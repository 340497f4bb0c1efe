package server

import (
	"fmt"
	"net/http"
	"testing"

	"foodgram/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func followTestApp(s *Server, userID uint) *fiber.App {
	app := fiber.New()
	app.Use(asUser(userID))
	app.Get("/api/users/subscriptions", s.GetSubscriptions)
	app.Post("/api/users/:id/subscribe", s.Subscribe)
	app.Delete("/api/users/:id/subscribe", s.Unsubscribe)
	return app
}

func TestSubscriptionRoutes(t *testing.T) {
	s := newTestServer(t)
	ingredients, tags := seedHandlerTestCatalog(t, s.db)
	follower := createHandlerTestUser(t, s.db, "reader", "user")
	chef := createHandlerTestUser(t, s.db, "chef", "user")

	chefApp := recipeTestApp(s, chef.ID)
	for _, name := range []string{"Soup", "Stew", "Pie"} {
		resp := doRequest(t, chefApp, http.MethodPost, "/api/recipes/",
			recipeBody(name, ingredients[0].ID, tags[0].ID))
		_ = resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	app := followTestApp(s, follower.ID)
	subscribePath := fmt.Sprintf("/api/users/%d/subscribe", chef.ID)

	t.Run("subscribe truncates recipes but not the count", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, subscribePath+"?recipes_limit=2", "")
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var view models.SubscriptionView
		decodeJSON(t, resp, &view)
		assert.Equal(t, "chef", view.Username)
		assert.True(t, view.IsSubscribed)
		assert.Len(t, view.Recipes, 2)
		assert.EqualValues(t, 3, view.RecipesCount)
	})

	t.Run("duplicate subscribe is a client error", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, subscribePath, "")
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("self subscribe is a client error", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/users/%d/subscribe", follower.ID), "")
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("subscribing to an unknown author is 404", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/users/999/subscribe", "")
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("subscriptions listing", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/users/subscriptions?recipes_limit=1", "")
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var views []models.SubscriptionView
		decodeJSON(t, resp, &views)
		require.Len(t, views, 1)
		assert.Equal(t, "chef", views[0].Username)
		assert.Len(t, views[0].Recipes, 1)
		assert.EqualValues(t, 3, views[0].RecipesCount)
	})

	t.Run("unsubscribe", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodDelete, subscribePath, "")
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		again := doRequest(t, app, http.MethodDelete, subscribePath, "")
		defer func() { _ = again.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, again.StatusCode)
	})
}
