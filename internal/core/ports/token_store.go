package ports

import (
	"context"
	"time"
)

// TokenStore keeps the single active auth token of each user.
type TokenStore interface {
	// Get returns the registered token for userID or domain.ErrTokenNotFound.
	Get(ctx context.Context, userID string) (string, error)
	// Register stores token for userID unless a live token is already
	// registered, and returns whichever token ends up stored. A zero ttl
	// means the entry does not expire on its own.
	Register(ctx context.Context, userID, token string, ttl time.Duration) (string, error)
	// Evict removes the entry for userID only while it still holds stale.
	Evict(ctx context.Context, userID, stale string) error
	// Delete removes whatever token is registered for userID.
	Delete(ctx context.Context, userID string) error
}
