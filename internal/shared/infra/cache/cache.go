// Package cache provides the entity-by-id cache port shared by the
// services, with Redis and in-memory adapters.
package cache

import "context"

// Cache is the port the application layer depends on. Implementations
// serialize values as JSON so Redis and the in-memory fallback behave the
// same way.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, val interface{}, ttlSecs int) error
	Delete(ctx context.Context, key string) error
}

// Key builds the cache key for an entity id, e.g. "campaign:abc123".
func Key(entity, id string) string {
	return entity + ":" + id
}
