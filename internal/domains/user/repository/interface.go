package repository

import (
	"context"

	"github.com/google/uuid"

	"infinite-ideas-hub/internal/domains/user/model"
	"infinite-ideas-hub/internal/shared/session"
)

type Repository interface {
	// Create inserts u and fills its ID and timestamps. ErrEmailTaken on duplicate email.
	Create(ctx context.Context, u *model.User) error

	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// List returns users newest first.
	List(ctx context.Context, page, limit int) ([]*model.User, int, error)

	UpdateRole(ctx context.Context, id uuid.UUID, role session.Role) error

	// PromoteProfile sets role=author along with display name and image.
	PromoteProfile(ctx context.Context, id uuid.UUID, name, image string) error

	Count(ctx context.Context) (int, error)
}
