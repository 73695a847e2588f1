package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/recipebox/recipe-api/internal/core/domain"
	"github.com/recipebox/recipe-api/internal/core/ports"
)

// evictScript deletes KEYS[1] only when it still holds ARGV[1].
var evictScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// TokenStore keeps the registered token of each user under a single key, so a
// user never has more than one. Keys expire with the token.
// Key format: auth:token:<user_id>
type TokenStore struct {
	client redis.Cmdable
}

func NewTokenStore(client redis.Cmdable) *TokenStore {
	return &TokenStore{client: client}
}

func (s *TokenStore) Get(ctx context.Context, userID string) (string, error) {
	token, err := s.client.Get(ctx, tokenKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrTokenNotFound
		}
		return "", fmt.Errorf("get token: %w", err)
	}
	return token, nil
}

// Register claims the key with SETNX. When another login got there first the
// stored token is returned instead. A non-positive ttl stores without expiry.
func (s *TokenStore) Register(ctx context.Context, userID, token string, ttl time.Duration) (string, error) {
	if ttl < 0 {
		ttl = 0
	}
	key := tokenKey(userID)

	// The winner's key can expire between SETNX and GET, so try twice.
	for attempt := 0; attempt < 2; attempt++ {
		ok, err := s.client.SetNX(ctx, key, token, ttl).Result()
		if err != nil {
			return "", fmt.Errorf("register token: %w", err)
		}
		if ok {
			return token, nil
		}

		stored, err := s.Get(ctx, userID)
		if errors.Is(err, domain.ErrTokenNotFound) {
			continue
		}
		if err != nil {
			return "", err
		}
		return stored, nil
	}
	return "", fmt.Errorf("register token: key %s kept expiring", key)
}

func (s *TokenStore) Evict(ctx context.Context, userID, stale string) error {
	if err := evictScript.Run(ctx, s.client, []string{tokenKey(userID)}, stale).Err(); err != nil {
		return fmt.Errorf("evict token: %w", err)
	}
	return nil
}

func (s *TokenStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, tokenKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

func tokenKey(userID string) string {
	return fmt.Sprintf("auth:token:%s", userID)
}

var _ ports.TokenStore = (*TokenStore)(nil)
