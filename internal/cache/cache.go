// Package cache provides the TTL caches placed in front of collaborators.
// A cache is an explicit object handed to the component that uses it; the
// TTL is fixed at construction. Nothing here is package-level state.
package cache

import (
	"context"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Cache stores opaque byte values for a fixed TTL.
type Cache interface {
	// Get returns the value for key and whether it was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key for the cache's TTL.
	Set(ctx context.Context, key string, value []byte) error
}

// Key derives a compact cache key from a namespace and a request payload.
func Key(namespace string, payload []byte) string {
	return namespace + ":" + strconv.FormatUint(xxhash.Sum64(payload), 16)
}
