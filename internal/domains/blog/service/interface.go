package service

import (
	"context"

	"github.com/google/uuid"

	authorModel "infinite-ideas-hub/internal/domains/author/model"
	"infinite-ideas-hub/internal/domains/blog/model"
	"infinite-ideas-hub/internal/shared/session"
)

type ServiceInterface interface {
	// ========================================
	// AUTHORING
	// ========================================
	CreateBlog(ctx context.Context, identity *session.Identity, req model.CreateRequest) (*model.Blog, error)
	// UpdateBlog applies req to an owned blog. A missing blog is ErrBlogNotFound.
	UpdateBlog(ctx context.Context, identity *session.Identity, id uuid.UUID, req model.UpdateRequest) (*model.Blog, error)
	// RecoverBlog recreates a blog from the editor's fields after its target vanished.
	RecoverBlog(ctx context.Context, identity *session.Identity, req model.RecoverRequest) (*model.Blog, error)

	// ========================================
	// PUBLIC READS
	// ========================================
	GetBySlug(ctx context.Context, slug string) (*model.Blog, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Blog, error)
	ListPublished(ctx context.Context, filter model.ListFilter) ([]*model.Blog, int, error)
	Featured(ctx context.Context) (*model.Blog, error)
	NextOrOldest(ctx context.Context, slug string) (*model.Blog, error)

	// ========================================
	// LIKES
	// ========================================
	Like(ctx context.Context, slug, clientKey string) (*model.LikeResponse, error)
	Unlike(ctx context.Context, slug, clientKey string) (*model.LikeResponse, error)

	// ========================================
	// ADMIN
	// ========================================
	AdminList(ctx context.Context, admin *session.Identity, filter model.AdminFilter) ([]*model.Blog, int, error)
	Delete(ctx context.Context, admin *session.Identity, id uuid.UUID) error
}

// AuthorResolver finds or lazily creates the caller's author profile.
type AuthorResolver interface {
	ResolveForUser(ctx context.Context, identity *session.Identity) (*authorModel.Author, error)
}
