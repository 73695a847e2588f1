package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/recipebox/recipe-api/internal/api/metrics"
	"github.com/recipebox/recipe-api/internal/core/domain"
	"github.com/recipebox/recipe-api/internal/core/ports"
)

// TagService implements tag operations scoped to the requesting user.
type TagService struct {
	repo   ports.TagRepository
	logger zerolog.Logger
}

func NewTagService(repo ports.TagRepository, logger zerolog.Logger) *TagService {
	return &TagService{repo: repo, logger: logger}
}

// ListTags returns the tags owned by userID, ordered by name descending.
func (s *TagService) ListTags(ctx context.Context, userID string) ([]*domain.Tag, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *TagService) CreateTag(ctx context.Context, userID, name string) (*domain.Tag, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	name, err := domain.NormalizeTagName(name)
	if err != nil {
		return nil, err
	}

	tag, err := s.repo.Create(ctx, &domain.Tag{
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to create tag")
		return nil, err
	}

	metrics.TagsCreatedTotal.Inc()
	s.logger.Info().Str("user_id", userID).Str("tag_id", tag.ID).Msg("tag created")
	return tag, nil
}
