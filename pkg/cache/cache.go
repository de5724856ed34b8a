// Package cache defines the key/value cache used to hold rendered
// resolution results between inventory changes.
package cache

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("cache: key not found")

type Cache interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	// Keys returns the live keys matching a glob pattern where '*' matches
	// any run of characters.
	Keys(ctx context.Context, pattern string) ([]string, error)
	Close() error
}
