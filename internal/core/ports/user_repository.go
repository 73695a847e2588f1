package ports

import (
	"context"

	"github.com/recipebox/recipe-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts. Implementations
// enforce email uniqueness with the store's own unique constraint and return
// domain.ErrUserExists on violation.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Update persists name, password hash and flags of an existing user.
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
