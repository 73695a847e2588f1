package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/recipebox/recipe-api/internal/core/domain"
	"github.com/recipebox/recipe-api/internal/core/ports"
)

// TokenStore keeps one row per user in auth_tokens. Expired rows are treated
// as absent and taken over by the next Register.
type TokenStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewTokenStore(db *sql.DB) *TokenStore {
	return &TokenStore{db: db, now: time.Now}
}

func (s *TokenStore) Get(ctx context.Context, userID string) (string, error) {
	var (
		token     string
		expiresAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT token, expires_at FROM auth_tokens WHERE user_id = ?`, userID,
	).Scan(&token, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrTokenNotFound
		}
		return "", fmt.Errorf("get token: %w", err)
	}
	if expiresAt != 0 && toMillis(s.now()) >= expiresAt {
		return "", domain.ErrTokenNotFound
	}
	return token, nil
}

// Register inserts the user's row, or takes it over when the registered token
// has expired. A live row is left alone and its token is returned.
func (s *TokenStore) Register(ctx context.Context, userID, token string, ttl time.Duration) (string, error) {
	for attempt := 0; attempt < 2; attempt++ {
		now := s.now()
		var expiresAt int64
		if ttl > 0 {
			expiresAt = toMillis(now.Add(ttl))
		}

		_, err := s.db.ExecContext(ctx,
			`INSERT INTO auth_tokens (user_id, token, created_at, expires_at) VALUES (?, ?, ?, ?)
			 ON CONFLICT (user_id) DO UPDATE SET
			     token = excluded.token,
			     created_at = excluded.created_at,
			     expires_at = excluded.expires_at
			 WHERE auth_tokens.expires_at != 0 AND auth_tokens.expires_at <= ?`,
			userID, token, toMillis(now), expiresAt, toMillis(now),
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return "", domain.ErrUserNotFound
			}
			return "", fmt.Errorf("register token: %w", err)
		}

		stored, err := s.Get(ctx, userID)
		if errors.Is(err, domain.ErrTokenNotFound) {
			// evicted or expired between the insert and the read
			continue
		}
		if err != nil {
			return "", err
		}
		return stored, nil
	}
	return "", fmt.Errorf("register token: row for %s kept disappearing", userID)
}

func (s *TokenStore) Evict(ctx context.Context, userID, stale string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE user_id = ? AND token = ?`, userID, stale)
	if err != nil {
		return fmt.Errorf("evict token: %w", err)
	}
	return nil
}

func (s *TokenStore) Delete(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

var _ ports.TokenStore = (*TokenStore)(nil)
