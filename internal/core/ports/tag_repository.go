package ports

import (
	"context"

	"github.com/recipebox/recipe-api/internal/core/domain"
)

// TagRepository defines persistence for tags.
type TagRepository interface {
	Create(ctx context.Context, tag *domain.Tag) (*domain.Tag, error)
	// ListByUser returns only the tags owned by userID, ordered by name descending.
	ListByUser(ctx context.Context, userID string) ([]*domain.Tag, error)
}
