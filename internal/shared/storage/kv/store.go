// Package kv provides short-lived key/value state: OAuth state nonces and
// the revoked refresh token list.
package kv

import (
	"context"
	"time"
)

// Store is a TTL-aware key/value store.
type Store interface {
	// SetNX stores value under key unless the key already exists.
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	// Take returns and deletes the value under key.
	Take(ctx context.Context, key string) (string, bool, error)
	// Exists reports whether key is present and unexpired.
	Exists(ctx context.Context, key string) (bool, error)
}
