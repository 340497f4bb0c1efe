// Package middleware provides authentication, logging, metrics and rate
// limiting middleware for the application.
package middleware

import (
	"context"
	"strconv"
	"strings"

	"foodgram/internal/cache"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

const (
	// TokenIssuer is the expected "iss" claim of access tokens.
	TokenIssuer = "foodgram-api"
	// TokenAudience is the expected "aud" claim of access tokens.
	TokenAudience = "foodgram-client"
)

// AuthRequired enforces a valid bearer token and stores the caller's
// user ID in c.Locals("userID"). When a Redis client is provided,
// revoked token IDs are rejected.
func AuthRequired(secret string, rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, claims, err := parseBearerToken(c, secret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if jti, ok := claims["jti"].(string); ok && jti != "" && rdb != nil {
			revoked, err := rdb.Exists(c.Context(), cache.TokenBlacklistKey(jti)).Result()
			if err == nil && revoked > 0 {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Token has been revoked",
				})
			}
		}

		setViewer(c, userID)
		return c.Next()
	}
}

// OptionalAuth resolves the viewer when a valid bearer token is present
// and proceeds anonymously otherwise. Anonymous viewers never trigger
// membership lookups: handlers treat a missing userID as "all
// viewer-relative flags are false".
func OptionalAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get("Authorization") == "" {
			return c.Next()
		}
		userID, _, err := parseBearerToken(c, secret)
		if err != nil {
			// A malformed token on an optional route degrades to anonymous.
			return c.Next()
		}
		setViewer(c, userID)
		return c.Next()
	}
}

func setViewer(c *fiber.Ctx, userID uint) {
	c.Locals("userID", userID)
	ctx := context.WithValue(c.UserContext(), UserIDKey, userID)
	c.SetUserContext(ctx)
}

func parseBearerToken(c *fiber.Ctx, secret string) (uint, jwt.MapClaims, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return 0, nil, fiber.NewError(fiber.StatusUnauthorized, "Authorization header required")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid authorization header format")
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}

	if issuer, ok := claims["iss"].(string); !ok || issuer != TokenIssuer {
		return 0, nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token issuer")
	}
	if audience, ok := claims["aud"].(string); !ok || audience != TokenAudience {
		return 0, nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token audience")
	}

	subStr, ok := claims["sub"].(string)
	if !ok {
		return 0, nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid subject claim")
	}

	userID, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return 0, nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid user ID in token")
	}

	return uint(userID), claims, nil
}
