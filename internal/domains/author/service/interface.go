package service

import (
	"context"

	"github.com/google/uuid"

	auditModel "infinite-ideas-hub/internal/domains/audit/model"
	"infinite-ideas-hub/internal/domains/author/model"
	blogModel "infinite-ideas-hub/internal/domains/blog/model"
	userModel "infinite-ideas-hub/internal/domains/user/model"
	"infinite-ideas-hub/internal/shared/session"
)

type ServiceInterface interface {
	// ========================================
	// PUBLIC
	// ========================================
	List(ctx context.Context) ([]*model.Author, error)
	GetBySlug(ctx context.Context, slug string) (*model.AuthorWithBlogs, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.AuthorWithBlogs, error)

	// ResolveForUser returns the caller's author profile, creating an
	// "Unknown Author" placeholder on first use.
	ResolveForUser(ctx context.Context, identity *session.Identity) (*model.Author, error)

	// ========================================
	// ADMIN
	// ========================================
	Promote(ctx context.Context, admin *session.Identity, req model.PromoteRequest) (*model.PromoteResponse, []string, error)
	Update(ctx context.Context, admin *session.Identity, id uuid.UUID, req model.UpdateRequest) (*model.Author, error)
	Delete(ctx context.Context, admin *session.Identity, id uuid.UUID) error
}

// UserStore is the slice of the user repository promotion needs.
type UserStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*userModel.User, error)
	FindByEmail(ctx context.Context, email string) (*userModel.User, error)
	PromoteProfile(ctx context.Context, id uuid.UUID, name, image string) error
}

type PublishedBlogLister interface {
	ListPublished(ctx context.Context, filter blogModel.ListFilter) ([]*blogModel.Blog, int, error)
}

type AuditRecorder interface {
	Record(ctx context.Context, e auditModel.Entry) error
}

type IdentityInvalidator interface {
	InvalidateIdentity(ctx context.Context, userID uuid.UUID)
}
