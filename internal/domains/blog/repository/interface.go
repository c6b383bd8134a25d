package repository

import (
	"context"

	"github.com/google/uuid"

	"infinite-ideas-hub/internal/domains/blog/model"
)

type Repository interface {
	// Create inserts b and fills its ID and timestamps.
	// ErrSlugTaken when the slug index rejects it.
	Create(ctx context.Context, b *model.Blog) error

	FindByID(ctx context.Context, id uuid.UUID) (*model.Blog, error)
	FindBySlug(ctx context.Context, slug string) (*model.Blog, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// ListPublished returns published blogs newest first plus the total match count.
	ListPublished(ctx context.Context, filter model.ListFilter) ([]*model.Blog, int, error)
	// Featured returns the most-liked published blog.
	Featured(ctx context.Context) (*model.Blog, error)
	// NextOrOldest returns the next newer published blog after current,
	// wrapping to the oldest published one.
	NextOrOldest(ctx context.Context, current *model.Blog) (*model.Blog, error)
	AdminList(ctx context.Context, filter model.AdminFilter) ([]*model.Blog, int, error)

	SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)

	// Update applies patch and returns the stored row.
	Update(ctx context.Context, id uuid.UUID, patch model.Patch) (*model.Blog, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// AddLikes adds delta to the counter of slug, flooring at zero.
	AddLikes(ctx context.Context, slug string, delta int) (int, error)

	// Count returns the number of blogs, optionally restricted to status.
	Count(ctx context.Context, status *model.Status) (int, error)
}
