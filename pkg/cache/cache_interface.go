package cache

import (
	"context"
	"time"
)

// Cache is the contract of the shared cache layer.
type Cache interface {
	// Get unmarshals the value stored at key into dest.
	// found is false on a cache miss; dest is left untouched then.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)

	// Set stores value as JSON with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error

	// AddToSet reports whether member was newly added.
	AddToSet(ctx context.Context, key, member string) (bool, error)
	// RemoveFromSet reports whether member was present.
	RemoveFromSet(ctx context.Context, key, member string) (bool, error)
}
