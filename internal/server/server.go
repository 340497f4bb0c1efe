// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"foodgram/internal/cache"
	"foodgram/internal/config"
	"foodgram/internal/database"
	"foodgram/internal/middleware"
	"foodgram/internal/models"
	"foodgram/internal/repository"
	"foodgram/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo       repository.UserRepository
	ingredientRepo repository.IngredientRepository
	tagRepo        repository.TagRepository
	recipeRepo     repository.RecipeRepository
	favoriteRepo   repository.FavoriteRepository
	cartRepo       repository.ShoppingCartRepository
	followRepo     repository.FollowRepository

	userService     *service.UserService
	catalogService  *service.CatalogService
	recipeService   *service.RecipeService
	favoriteService *service.FavoriteService
	shoppingService *service.ShoppingService
	followService   *service.FollowService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	tagRepo := repository.NewTagRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	cartRepo := repository.NewShoppingCartRepository(db)
	followRepo := repository.NewFollowRepository(db)

	prom := middleware.InitMetrics("foodgram-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       userRepo,
		ingredientRepo: ingredientRepo,
		tagRepo:        tagRepo,
		recipeRepo:     recipeRepo,
		favoriteRepo:   favoriteRepo,
		cartRepo:       cartRepo,
		followRepo:     followRepo,
	}

	server.userService = service.NewUserService(userRepo, followRepo)
	server.catalogService = service.NewCatalogService(ingredientRepo, tagRepo)
	server.recipeService = service.NewRecipeService(
		recipeRepo, ingredientRepo, tagRepo, favoriteRepo, cartRepo, followRepo, userRepo, cfg.MediaDir)
	server.favoriteService = service.NewFavoriteService(favoriteRepo, recipeRepo)
	server.shoppingService = service.NewShoppingService(cartRepo, recipeRepo)
	server.followService = service.NewFollowService(followRepo, userRepo, recipeRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Distributed tracing, when enabled
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they are handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Uploaded recipe images
	app.Static("/media", s.config.MediaDir)

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Foodgram Backend Metrics Dashboard",
	}))

	authRequired := middleware.AuthRequired(s.config.JWTSecret, s.redis)
	optionalAuth := middleware.OptionalAuth(s.config.JWTSecret)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/logout", authRequired, s.Logout)

	// User routes
	users := api.Group("/users")
	users.Get("/", optionalAuth, s.GetUsers)
	users.Get("/me", authRequired, s.GetMyProfile)
	users.Post("/set_password", authRequired, s.SetPassword)
	users.Get("/subscriptions", authRequired, s.GetSubscriptions)
	// Specific /:id/:resource routes before generic /:id route
	users.Post("/:id/subscribe", authRequired, s.Subscribe)
	users.Delete("/:id/subscribe", authRequired, s.Unsubscribe)
	users.Get("/:id", optionalAuth, s.GetUserProfile)

	// Catalog routes: public reads, admin writes
	tags := api.Group("/tags")
	tags.Get("/", s.GetTags)
	tags.Post("/", authRequired, s.AdminRequired(), s.CreateTag)
	tags.Get("/:id", s.GetTag)

	ingredients := api.Group("/ingredients")
	ingredients.Get("/", s.GetIngredients)
	ingredients.Post("/", authRequired, s.AdminRequired(), s.CreateIngredient)
	ingredients.Get("/:id", s.GetIngredient)

	// Recipe routes
	recipes := api.Group("/recipes")
	recipes.Get("/", optionalAuth, s.GetRecipes)
	recipes.Post("/", authRequired, middleware.RateLimit(
		s.redis, 10, time.Minute, "create_recipe"), s.CreateRecipe)
	// Specific routes before generic /:id route
	recipes.Get("/download_shopping_cart", authRequired, s.DownloadShoppingCart)
	recipes.Post("/:id/favorite", authRequired, s.AddFavorite)
	recipes.Delete("/:id/favorite", authRequired, s.RemoveFavorite)
	recipes.Post("/:id/shopping_cart", authRequired, s.AddToShoppingCart)
	recipes.Delete("/:id/shopping_cart", authRequired, s.RemoveFromShoppingCart)
	recipes.Get("/:id", optionalAuth, s.GetRecipe)
	recipes.Patch("/:id", authRequired, s.UpdateRecipe)
	recipes.Put("/:id", authRequired, s.UpdateRecipe)
	recipes.Delete("/:id", authRequired, s.DeleteRecipe)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The API stays functional without Redis, readiness only degrades.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AdminRequired returns middleware that rejects non-admin users with 403.
// Must be placed after the auth middleware so that userID is available
// in locals.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("userID").(uint)

		user, err := s.userRepo.GetByID(c.Context(), userID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		if !user.IsAdmin() {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewUnauthorizedError("Admin access required"))
		}

		return c.Next()
	}
}

// newApp builds the Fiber app with the shared config, middleware and
// routes. Start and tests go through it so the setup cannot drift.
func (s *Server) newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "Foodgram API",
		BodyLimit: 10 * 1024 * 1024, // base64 recipe images
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// Start listens on the configured port. It blocks until the listener
// stops.
func (s *Server) Start() error {
	s.app = s.newApp()

	log.Printf("Server starting on port %s...", s.config.Port)
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
