package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/recipebox/recipe-api/internal/api/metrics"
	"github.com/recipebox/recipe-api/internal/core/domain"
	"github.com/recipebox/recipe-api/internal/core/ports"
)

// UserService implements account creation and profile management.
type UserService struct {
	repo   ports.UserRepository
	tokens ports.TokenStore
	logger zerolog.Logger
}

// NewUserService builds the service. tokens may be nil, in which case a
// password change does not revoke the registered token.
func NewUserService(repo ports.UserRepository, tokens ports.TokenStore, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, tokens: tokens, logger: logger}
}

// CreateUser validates and normalizes the email, hashes the password and
// persists a regular account. Duplicate emails surface as domain.ErrUserExists.
func (s *UserService) CreateUser(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	user, err := s.newUser(in.Email, in.Password, in.Name)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, user, "user")
}

// CreateSuperuser is CreateUser with the staff and superuser flags set.
func (s *UserService) CreateSuperuser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.newUser(email, password, "")
	if err != nil {
		return nil, err
	}
	user.IsStaff = true
	user.IsSuperuser = true
	return s.create(ctx, user, "superuser")
}

func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateProfile applies only the fields present in the input. A new password
// is re-hashed before it is stored and revokes the registered token.
func (s *UserService) UpdateProfile(ctx context.Context, id string, in ports.UpdateProfileInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Password != nil {
		if err := user.SetPassword(*in.Password); err != nil {
			return nil, err
		}
	}
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to update profile")
		return nil, err
	}

	if in.Password != nil && s.tokens != nil {
		if err := s.tokens.Delete(ctx, id); err != nil {
			return nil, fmt.Errorf("revoke token: %w", err)
		}
	}

	s.logger.Info().
		Str("user_id", id).
		Bool("name_changed", in.Name != nil).
		Bool("password_changed", in.Password != nil).
		Msg("profile updated")
	return updated, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) newUser(email, password, name string) (*domain.User, error) {
	normalized, err := domain.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:     normalized,
		Name:      name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) create(ctx context.Context, user *domain.User, kind string) (*domain.User, error) {
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.UsersCreatedTotal.WithLabelValues(kind).Inc()
	s.logger.Info().Str("user_id", created.ID).Str("kind", kind).Msg("user created")
	return created, nil
}
