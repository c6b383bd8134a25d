package repository

import (
	"context"

	"infinite-ideas-hub/internal/domains/category/model"
)

type Repository interface {
	// Create inserts c. ErrCategoryExists when the name or slug is taken.
	Create(ctx context.Context, c *model.Category) error
	FindBySlug(ctx context.Context, slug string) (*model.Category, error)
	// List returns all categories ordered by name.
	List(ctx context.Context) ([]*model.Category, error)
}
