// Package cache provides the category-count cache. This is the one
// deliberate departure from "every page refetches": the category
// aggregate changes only when posts change, so it is cached with an
// explicit invalidation contract — every successful post create, update,
// delete, or publish invalidates it. Post, draft, and comment lists are
// never cached.
package cache

import (
	"context"
	"time"
)

// Cache is the byte-value store behind the category cache. All
// implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key, or ErrCacheMiss if absent/expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key; a zero TTL means the default TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// Close releases any resources held by the cache.
	Close() error
}

// Error is a sentinel error type for cache operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrCacheMiss indicates the key was not found or has expired.
	ErrCacheMiss Error = "cache miss"

	// ErrCacheClosed indicates the cache has been closed.
	ErrCacheClosed Error = "cache closed"
)
