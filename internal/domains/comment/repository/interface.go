package repository

import (
	"context"

	"github.com/google/uuid"

	"infinite-ideas-hub/internal/domains/comment/model"
)

type Repository interface {
	Create(ctx context.Context, c *model.Comment) error
	// ListByBlog returns comments newest first.
	ListByBlog(ctx context.Context, blogID uuid.UUID) ([]*model.Comment, error)
}
