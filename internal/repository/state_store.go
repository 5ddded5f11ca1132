package repository

import (
	"context"
	"time"
)

// StateStore abstracts ephemeral key-value state, used to cache invite
// previews on the public, unauthenticated lookup path.
// Implementations: Redis (production) or in-memory (local dev / single instance).
type StateStore interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Get returns nil with no error on a miss.
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
