package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	TagListKey             = "catalog:tags"
	IngredientSearchPrefix = "catalog:ingredients:%s"
)

const (
	TagListTTL          = 10 * time.Minute
	IngredientSearchTTL = 5 * time.Minute
)

func IngredientSearchKey(prefix string) string {
	return fmt.Sprintf(IngredientSearchPrefix, prefix)
}

// GetJSON loads a cached value into dest. Returns false on miss or when the
// cache is unavailable.
func GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if client == nil {
		return false
	}
	raw, err := client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			return false
		}
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// SetJSON stores a value under key with the given TTL. Failures are silent,
// the cache is best effort.
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	client.Set(ctx, key, raw, ttl)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateTags(ctx context.Context) {
	Invalidate(ctx, TagListKey)
}

// InvalidateIngredients drops every cached ingredient search result.
func InvalidateIngredients(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, fmt.Sprintf(IngredientSearchPrefix, "*"), 100).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}
