package service

import (
	"context"
	"time"
)

// Cache is the subset of the redis client services depend on. It is expected
// to fail safe: a broken cache reads as a miss, never as an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
