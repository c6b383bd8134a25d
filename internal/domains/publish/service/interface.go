package service

import (
	"context"

	"github.com/google/uuid"

	blogModel "infinite-ideas-hub/internal/domains/blog/model"
	"infinite-ideas-hub/internal/domains/publish/model"
	"infinite-ideas-hub/internal/shared/session"
)

type ServiceInterface interface {
	// Publish turns the editor state into a published blog and removes the
	// draft it came from. Draft cleanup failures come back as warnings.
	Publish(ctx context.Context, identity *session.Identity, req model.PublishRequest) (*model.PublishResponse, []string, error)
	Unpublish(ctx context.Context, identity *session.Identity, blogID uuid.UUID) (*blogModel.Blog, error)
	AdminAction(ctx context.Context, admin *session.Identity, req model.AdminActionRequest) (*model.AdminActionResponse, error)
}

type BlogStore interface {
	CreateBlog(ctx context.Context, identity *session.Identity, req blogModel.CreateRequest) (*blogModel.Blog, error)
	UpdateBlog(ctx context.Context, identity *session.Identity, id uuid.UUID, req blogModel.UpdateRequest) (*blogModel.Blog, error)
	GetByID(ctx context.Context, id uuid.UUID) (*blogModel.Blog, error)
	Delete(ctx context.Context, admin *session.Identity, id uuid.UUID) error
}

type DraftRemover interface {
	DeleteDraft(ctx context.Context, identity *session.Identity, id uuid.UUID) (int64, error)
	DeleteDraftByBlog(ctx context.Context, identity *session.Identity, blogID uuid.UUID) (int64, error)
}
