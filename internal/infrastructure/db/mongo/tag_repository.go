package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/recipebox/recipe-api/internal/core/domain"
	"github.com/recipebox/recipe-api/internal/core/ports"
)

type TagRepository struct {
	coll *mongo.Collection
}

func NewTagRepository(db *mongo.Database) *TagRepository {
	return &TagRepository{coll: db.Collection(tagsCollection)}
}

type tagDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Name      string             `bson:"name"`
	CreatedAt int64              `bson:"created_at"`
}

func (d tagDocument) toDomain() *domain.Tag {
	return &domain.Tag{
		ID:        d.ID.Hex(),
		UserID:    d.UserID,
		Name:      d.Name,
		CreatedAt: fromMillis(d.CreatedAt),
	}
}

func (r *TagRepository) Create(ctx context.Context, tag *domain.Tag) (*domain.Tag, error) {
	doc := tagDocument{
		ID:        primitive.NewObjectID(),
		UserID:    tag.UserID,
		Name:      tag.Name,
		CreatedAt: toMillis(tag.CreatedAt),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert tag: %w", err)
	}
	return doc.toDomain(), nil
}

// ListByUser returns the owner's tags sorted by name descending.
func (r *TagRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Tag, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []tagDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}

	tags := make([]*domain.Tag, 0, len(docs))
	for _, d := range docs {
		tags = append(tags, d.toDomain())
	}
	return tags, nil
}

var _ ports.TagRepository = (*TagRepository)(nil)
