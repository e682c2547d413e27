package domain

import (
	"context"
	"time"
)

// CacheError represents an error originating from the cache.
type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

// ErrCacheMiss is returned when a key is not found in the cache.
const ErrCacheMiss = CacheError("cache: key not found")

// Cache is the key/value store used for shared, expiring state.
type Cache interface {
	// Get returns ErrCacheMiss if the key is not found.
	Get(ctx context.Context, key string) (string, error)

	// Set overwrites the key. A zero expiration keeps it until deleted.
	Set(ctx context.Context, key string, value string, expiration time.Duration) error

	// Delete does not fail when the key is already gone.
	Delete(ctx context.Context, key string) error

	Ping(ctx context.Context) error

	// HGetAll returns an empty map when the hash does not exist.
	HGetAll(ctx context.Context, key string) (map[string]string, error)

	// HSetAll writes every field of values and sets the expiration of the hash in one round trip.
	HSetAll(ctx context.Context, key string, values map[string]string, expiration time.Duration) error

	Exists(ctx context.Context, key string) (bool, error)
}
