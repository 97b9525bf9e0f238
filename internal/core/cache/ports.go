package cache

import (
	"context"
	"time"
)

// Store defines the key-value and set operations used by feature repositories.
// This is a port that can be implemented by different providers (Redis, in-memory, etc.).
type Store interface {
	// Get retrieves a value by key.
	// Returns the stored value or an error if not found or on failure.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value under the specified key with the given TTL.
	// TTL of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// SetAdd adds members to the set stored at key.
	SetAdd(ctx context.Context, key string, members ...string) error

	// SetRemove removes members from the set stored at key.
	SetRemove(ctx context.Context, key string, members ...string) error

	// SetMembers returns all members of the set stored at key.
	// A missing set yields an empty slice, not an error.
	SetMembers(ctx context.Context, key string) ([]string, error)

	// Ping checks if the store is reachable.
	Ping(ctx context.Context) error

	// Close closes the underlying connection.
	Close() error
}
