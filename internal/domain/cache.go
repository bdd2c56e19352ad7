package domain

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Cache implementations when a key is absent.
var ErrCacheMiss = errors.New("cache miss")

// Cache defines the caching operations the services depend on.
type Cache interface {
	// Get retrieves an item. Returns ErrCacheMiss when the key is absent.
	Get(ctx context.Context, key string) (string, error)

	// Set adds an item with an expiration.
	Set(ctx context.Context, key string, value string, expiration time.Duration) error

	// Delete removes an item.
	Delete(ctx context.Context, key string) error

	// Ping checks the health of the cache backend.
	Ping(ctx context.Context) error
}
