// Package cache defines the caching seam used by the usecase layer.
// Implementations live under internal/infrastructure.
package cache

import "time"

// CacheService is a TTL key-value cache. Keys are namespaced strings like
// "product:slug:x" or "config:store"; values are stored as-is and callers
// type-assert on read.
type CacheService interface {
	// Get returns the cached value and whether the key was present.
	Get(key string) (interface{}, bool)

	// Set stores a value for the given duration.
	Set(key string, value interface{}, duration time.Duration)

	// Delete removes a single key.
	Delete(key string)

	// Flush drops everything.
	Flush()
}
