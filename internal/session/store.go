package session

import (
	"context"
	"time"
)

// Entry records which user owns an issued token. The registry entry's
// lifetime tracks the token's own expiry: the TTL passed to Put must
// equal the token's embedded expiry horizon.
type Entry struct {
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"` // absolute expiry time
}

// Store is the session registry: a key-value store mapping issued
// tokens to their owning identity, each key carrying an independent
// TTL. Implementations must make each operation atomic with respect
// to concurrent callers on the same key.
type Store interface {
	// Put inserts or overwrites the entry for token with expiry now+ttl.
	Put(ctx context.Context, token string, e Entry, ttl time.Duration) error
	// Get returns the entry for token, or (nil, nil) if it was never
	// inserted or its TTL elapsed.
	Get(ctx context.Context, token string) (*Entry, error)
	// Delete removes the entry and reports whether one existed.
	Delete(ctx context.Context, token string) (bool, error)
}
