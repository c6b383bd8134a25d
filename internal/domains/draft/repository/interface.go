package repository

import (
	"context"

	"github.com/google/uuid"

	"infinite-ideas-hub/internal/domains/draft/model"
)

type Repository interface {
	// Insert stores a standalone draft.
	Insert(ctx context.Context, d *model.Draft) error

	// Upsert writes the draft keyed by (user_id, blog_id) in one statement.
	// d is overwritten with the stored row; inserted reports a new row.
	Upsert(ctx context.Context, d *model.Draft) (inserted bool, err error)

	FindByID(ctx context.Context, id uuid.UUID) (*model.Draft, error)
	FindByUserAndBlog(ctx context.Context, userID, blogID uuid.UUID) (*model.Draft, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Draft, error)

	Update(ctx context.Context, id uuid.UUID, patch model.Patch) (*model.Draft, error)

	// Delete methods report the number of removed rows. A nil userID
	// removes regardless of owner.
	DeleteByID(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (int64, error)
	DeleteByBlog(ctx context.Context, userID, blogID uuid.UUID) (int64, error)
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	Count(ctx context.Context) (int, error)
}
