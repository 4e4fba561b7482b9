// Package cache keeps hot, rarely changing catalog lookups in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"musicroot/internal/app/data"
	"musicroot/internal/models"
)

const categoryKeyPrefix = "musicroot:category:"

// Client is the subset of the Redis client the cache uses.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// Categories is a read-through cache in front of a data.CategoryProvider. Redis failures
// are logged and fall back to the wrapped provider; misses are not cached.
type Categories struct {
	rdb  Client
	next data.CategoryProvider
	ttl  time.Duration
}

var _ data.CategoryProvider = (*Categories)(nil)

// NewCategories wraps next with a Redis cache holding entries for ttl.
func NewCategories(rdb Client, next data.CategoryProvider, ttl time.Duration) *Categories {
	return &Categories{rdb: rdb, next: next, ttl: ttl}
}

type categoryEntry struct {
	ID   uuid.UUID           `json:"id"`
	Name models.CategoryName `json:"name"`
}

func (c *Categories) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	key := categoryKeyPrefix + id.String()

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var entry categoryEntry
		if jsonErr := json.Unmarshal(raw, &entry); jsonErr == nil {
			return &models.Category{ID: entry.ID, Name: entry.Name}, nil
		}
		log.Warn().Str("key", key).Msg("discarding malformed category cache entry")
	case errors.Is(err, redis.Nil):
	default:
		log.Warn().Err(err).Str("key", key).Msg("category cache read failed")
	}

	category, err := c.next.FindByID(ctx, id)
	if err != nil || category == nil {
		return category, err
	}

	payload, err := json.Marshal(categoryEntry{ID: category.ID, Name: category.Name})
	if err == nil {
		err = c.rdb.Set(ctx, key, payload, c.ttl).Err()
	}
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("category cache write failed")
	}

	return category, nil
}
