package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/recipebox/recipe-api/internal/api/metrics"
	"github.com/recipebox/recipe-api/internal/core/domain"
	"github.com/recipebox/recipe-api/internal/core/ports"
)

// AuthService exchanges credentials for bearer tokens and resolves tokens
// back to users. Each user has at most one registered token at a time.
type AuthService struct {
	users     ports.UserRepository
	tokens    ports.TokenStore
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenStore, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		tokens:    tokens,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// IssueToken checks the credentials and returns the user's token, reusing the
// registered one while it is still valid. Every credential failure, including
// an unknown email, is reported as domain.ErrInvalidCredentials.
func (s *AuthService) IssueToken(ctx context.Context, email, password string) (string, error) {
	normalized, err := domain.NormalizeEmail(email)
	if err != nil || password == "" {
		metrics.LoginFailuresTotal.Inc()
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginFailuresTotal.Inc()
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !user.IsActive || !user.CheckPassword(password) {
		metrics.LoginFailuresTotal.Inc()
		return "", domain.ErrInvalidCredentials
	}

	token, reused, err := s.registeredToken(ctx, user)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	if reused {
		metrics.TokensIssuedTotal.WithLabelValues("reused").Inc()
		return token, nil
	}
	metrics.TokensIssuedTotal.WithLabelValues("issued").Inc()
	s.logger.Info().Str("user_id", user.ID).Msg("token issued")
	return token, nil
}

// registeredToken returns the token the store holds for user, signing and
// registering a fresh one when none is live. Concurrent logins converge on
// the single stored token. A stored token that no longer verifies is evicted
// only if it is still the one registered.
func (s *AuthService) registeredToken(ctx context.Context, user *domain.User) (string, bool, error) {
	for attempt := 0; attempt < 3; attempt++ {
		existing, err := s.tokens.Get(ctx, user.ID)
		switch {
		case err == nil:
			if _, perr := s.parse(existing); perr == nil {
				return existing, true, nil
			}
			if err := s.tokens.Evict(ctx, user.ID, existing); err != nil {
				return "", false, err
			}
		case !errors.Is(err, domain.ErrTokenNotFound):
			return "", false, err
		}

		fresh, err := s.generateToken(user)
		if err != nil {
			return "", false, err
		}
		stored, err := s.tokens.Register(ctx, user.ID, fresh, s.tokenTTL)
		if err != nil {
			return "", false, err
		}
		if stored == fresh {
			return fresh, false, nil
		}
		if _, perr := s.parse(stored); perr == nil {
			return stored, true, nil
		}
	}
	return "", false, errors.New("no usable token could be registered")
}

// Authenticate verifies the token signature and expiry, checks that it is the
// token currently registered for its subject and loads the active user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	claims, err := s.parse(token)
	if err != nil || claims.Subject == "" {
		return nil, domain.ErrUnauthenticated
	}

	registered, err := s.tokens.Get(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if subtle.ConstantTimeCompare([]byte(registered), []byte(token)) != 1 {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if !user.IsActive {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) parse(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return claims, nil
}
