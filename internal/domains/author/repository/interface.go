package repository

import (
	"context"

	"github.com/google/uuid"

	"infinite-ideas-hub/internal/domains/author/model"
)

type Repository interface {
	// Create inserts a. ErrSlugTaken when the slug index rejects it,
	// ErrAuthorExists when the user already has a profile.
	Create(ctx context.Context, a *model.Author) error

	// CreateForUser inserts a and flips the linked user's role to author
	// (with display name and image) in one transaction.
	CreateForUser(ctx context.Context, a *model.Author, userName, userImage string) error

	FindByID(ctx context.Context, id uuid.UUID) (*model.Author, error)
	FindBySlug(ctx context.Context, slug string) (*model.Author, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Author, error)
	List(ctx context.Context) ([]*model.Author, error)

	SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)

	// Update applies patch and copies name/slug changes onto blogs in the
	// same transaction.
	Update(ctx context.Context, id uuid.UUID, patch model.AuthorPatch) (*model.Author, error)

	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}
