// Package cache stores compiled artifacts keyed by a hash of the composed
// document, so identical exports skip compilation.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// KeyPrefix namespaces export entries.
const KeyPrefix = "export"

// Cache is a byte store with expiry.
type Cache interface {
	// Get returns the cached value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key for ttl. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Key returns the cache key for a composed document.
func Key(document string) string {
	return KeyPrefix + ":" + Hash([]byte(document))
}
