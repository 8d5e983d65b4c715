// Package cache key-value cache with expiration
package cache

import (
	"context"
	"time"
)

// Cache get/set/ttl contract shared by the in-memory and redis stores
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
