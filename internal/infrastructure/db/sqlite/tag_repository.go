package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/recipebox/recipe-api/internal/core/domain"
	"github.com/recipebox/recipe-api/internal/core/ports"
)

type TagRepository struct {
	db *sql.DB
}

func NewTagRepository(db *sql.DB) *TagRepository {
	return &TagRepository{db: db}
}

// Create inserts a tag. An owner that does not exist trips the foreign key
// and is reported as domain.ErrUserNotFound.
func (r *TagRepository) Create(ctx context.Context, tag *domain.Tag) (*domain.Tag, error) {
	created := *tag
	created.ID = uuid.NewString()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tags (id, user_id, name, created_at) VALUES (?, ?, ?, ?)`,
		created.ID, created.UserID, created.Name, toMillis(created.CreatedAt),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("insert tag: %w", err)
	}
	return &created, nil
}

func (r *TagRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Tag, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, created_at FROM tags WHERE user_id = ? ORDER BY name DESC, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	tags := make([]*domain.Tag, 0)
	for rows.Next() {
		var (
			t         domain.Tag
			createdAt int64
		)
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		t.CreatedAt = fromMillis(createdAt)
		tags = append(tags, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

var _ ports.TagRepository = (*TagRepository)(nil)
