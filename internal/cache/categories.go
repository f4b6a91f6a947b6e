package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/inkwellhq/inkwell/internal/model"
)

// Categories caches pages of the category-count aggregate. The cache
// holds nothing else, so invalidation clears the whole backend.
type Categories struct {
	cache Cache
	ttl   time.Duration
}

// Config selects and sizes the cache backend.
type Config struct {
	RedisURL string // Empty selects the memory backend
	Prefix   string
	TTL      time.Duration
}

// NewCategories builds the category cache, falling back to memory when
// Redis is configured but unreachable.
func NewCategories(cfg Config) *Categories {
	if cfg.TTL <= 0 {
		cfg.TTL = 5 * time.Minute
	}

	var backend Cache
	if cfg.RedisURL != "" {
		redisCache, err := NewRedisCache(RedisCacheOptions{
			URL:        cfg.RedisURL,
			Prefix:     cfg.Prefix,
			DefaultTTL: cfg.TTL,
		})
		if err != nil {
			slog.Warn("redis unavailable, using memory cache", "error", err)
		} else {
			backend = redisCache
		}
	}
	if backend == nil {
		backend = NewMemoryCache(cfg.TTL, time.Minute)
	}

	return &Categories{cache: backend, ttl: cfg.TTL}
}

// key identifies one page of the aggregate.
func key(page, size int, search string) string {
	return fmt.Sprintf("categories:p%d:s%d:q%s", page, size, search)
}

// Get returns a cached page of category counts, if present.
func (c *Categories) Get(ctx context.Context, page, size int, search string) (model.Paged[model.Category], bool) {
	var counts model.Paged[model.Category]

	data, err := c.cache.Get(ctx, key(page, size, search))
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			slog.Warn("category cache read failed", "error", err)
		}
		return counts, false
	}
	if err := json.Unmarshal(data, &counts); err != nil {
		return counts, false
	}
	return counts, true
}

// Put stores a page of category counts.
func (c *Categories) Put(ctx context.Context, page, size int, search string, counts model.Paged[model.Category]) {
	data, err := json.Marshal(counts)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key(page, size, search), data, c.ttl); err != nil {
		slog.Warn("category cache write failed", "error", err)
	}
}

// Invalidate drops every cached page. Called after any successful post
// create, update, delete, or publish — the explicit contract that
// replaces implicit full refetches.
func (c *Categories) Invalidate(ctx context.Context) {
	if err := c.cache.Clear(ctx); err != nil {
		slog.Warn("category cache invalidation failed", "error", err)
	}
}

// Close releases the backend.
func (c *Categories) Close() error {
	return c.cache.Close()
}
