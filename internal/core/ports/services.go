package ports

import (
	"context"

	"github.com/recipebox/recipe-api/internal/core/domain"
)

// CreateUserInput carries the fields accepted when registering an account.
type CreateUserInput struct {
	Email    string
	Password string
	Name     string
}

// UpdateProfileInput carries a partial profile update. Nil fields are left
// unchanged.
type UpdateProfileInput struct {
	Name     *string
	Password *string
}

type UserService interface {
	CreateUser(ctx context.Context, in CreateUserInput) (*domain.User, error)
	CreateSuperuser(ctx context.Context, email, password string) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
}

type AuthService interface {
	IssueToken(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

type TagService interface {
	ListTags(ctx context.Context, userID string) ([]*domain.Tag, error)
	CreateTag(ctx context.Context, userID, name string) (*domain.Tag, error)
}
