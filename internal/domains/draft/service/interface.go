package service

import (
	"context"

	"github.com/google/uuid"

	"infinite-ideas-hub/internal/domains/draft/model"
	"infinite-ideas-hub/internal/shared/session"
)

type ServiceInterface interface {
	// SaveDraft upserts by (user, blog) when a blogId is given, otherwise
	// stores a new standalone draft.
	SaveDraft(ctx context.Context, identity *session.Identity, req model.SaveRequest) (*model.SaveResponse, error)
	UpdateDraft(ctx context.Context, identity *session.Identity, req model.UpdateRequest) (*model.Draft, error)

	GetDraft(ctx context.Context, identity *session.Identity, id uuid.UUID) (*model.Draft, error)
	GetDraftByBlog(ctx context.Context, identity *session.Identity, blogID uuid.UUID) (*model.Draft, error)
	ListDrafts(ctx context.Context, identity *session.Identity) ([]*model.Draft, error)

	// Deletes never fail on absence; the count is 0 instead.
	DeleteDraft(ctx context.Context, identity *session.Identity, id uuid.UUID) (int64, error)
	DeleteDraftByBlog(ctx context.Context, identity *session.Identity, blogID uuid.UUID) (int64, error)
	DeleteAllDrafts(ctx context.Context, identity *session.Identity) (int64, error)
}

// BlogChecker verifies that a draft's blog reference points at a real blog.
type BlogChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
