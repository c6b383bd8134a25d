package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	blogModel "infinite-ideas-hub/internal/domains/blog/model"
	"infinite-ideas-hub/internal/domains/draft/model"
	"infinite-ideas-hub/internal/domains/draft/repository"
	"infinite-ideas-hub/internal/shared/result"
	"infinite-ideas-hub/internal/shared/session"
	"infinite-ideas-hub/internal/shared/utils"
)

type draftService struct {
	repo  repository.Repository
	blogs BlogChecker
}

func NewDraftService(repo repository.Repository, blogs BlogChecker) ServiceInterface {
	return &draftService{repo: repo, blogs: blogs}
}

func requireWriter(identity *session.Identity) error {
	_, err := session.RequireRole(identity, session.RoleAuthor, session.RoleAdmin)
	return err
}

func (s *draftService) SaveDraft(ctx context.Context, identity *session.Identity, req model.SaveRequest) (*model.SaveResponse, error) {
	if err := requireWriter(identity); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, result.InvalidErr(err)
	}

	draft := &model.Draft{
		UserID:      identity.UserID,
		Title:       strings.TrimSpace(req.Title),
		Description: utils.SanitizeHTML(req.Description),
		Image:       utils.StringOr(strings.TrimSpace(req.Image), blogModel.DefaultImage),
		Category:    utils.StringOr(strings.TrimSpace(req.Category), blogModel.DefaultCategory),
		Status:      req.Status,
	}
	if draft.Status == "" {
		draft.Status = blogModel.StatusDraft
	}

	if req.BlogID == "" {
		if err := s.repo.Insert(ctx, draft); err != nil {
			return nil, result.Internal(err)
		}
		return &model.SaveResponse{Draft: draft, Created: true}, nil
	}

	blogID := uuid.MustParse(req.BlogID)
	exists, err := s.blogs.Exists(ctx, blogID)
	if err != nil {
		return nil, result.Internal(err)
	}
	if !exists {
		return nil, model.ErrBlogMissing
	}

	draft.BlogID = &blogID
	inserted, err := s.repo.Upsert(ctx, draft)
	if err != nil {
		return nil, result.Internal(err)
	}

	resp := &model.SaveResponse{Draft: draft, Created: inserted}
	// the row replaced had revision draft.Revision-1
	if !inserted && req.BaseRevision != nil && *req.BaseRevision < draft.Revision-1 {
		resp.StaleRevision = true
		log.Warn().
			Str("draft_id", draft.ID.String()).
			Int64("base_revision", *req.BaseRevision).
			Int64("stored_revision", draft.Revision-1).
			Msg("draft overwritten from a stale revision")
	}
	return resp, nil
}

func (s *draftService) UpdateDraft(ctx context.Context, identity *session.Identity, req model.UpdateRequest) (*model.Draft, error) {
	if err := requireWriter(identity); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, result.InvalidErr(err)
	}

	id := uuid.MustParse(req.DraftID)
	current, err := s.owned(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	var patch model.Patch
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		patch.Title = &title
	}
	if req.Description != nil {
		desc := utils.SanitizeHTML(*req.Description)
		patch.Description = &desc
	}
	if req.Image != nil {
		image := utils.StringOr(strings.TrimSpace(*req.Image), blogModel.DefaultImage)
		patch.Image = &image
	}
	if req.Category != nil {
		category := utils.StringOr(strings.TrimSpace(*req.Category), blogModel.DefaultCategory)
		patch.Category = &category
	}
	patch.Status = req.Status
	if patch.IsEmpty() {
		return current, nil
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, model.ErrDraftNotFound) {
			return nil, err
		}
		return nil, result.Internal(err)
	}
	return updated, nil
}

// owned loads a draft and enforces ownership.
func (s *draftService) owned(ctx context.Context, identity *session.Identity, id uuid.UUID) (*model.Draft, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrDraftNotFound) {
			return nil, err
		}
		return nil, result.Internal(err)
	}
	if err := session.CanModifyDraft(identity, d.UserID); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *draftService) GetDraft(ctx context.Context, identity *session.Identity, id uuid.UUID) (*model.Draft, error) {
	if err := requireWriter(identity); err != nil {
		return nil, err
	}
	return s.owned(ctx, identity, id)
}

func (s *draftService) GetDraftByBlog(ctx context.Context, identity *session.Identity, blogID uuid.UUID) (*model.Draft, error) {
	if err := requireWriter(identity); err != nil {
		return nil, err
	}
	d, err := s.repo.FindByUserAndBlog(ctx, identity.UserID, blogID)
	if err != nil {
		if errors.Is(err, model.ErrDraftNotFound) {
			return nil, err
		}
		return nil, result.Internal(err)
	}
	return d, nil
}

func (s *draftService) ListDrafts(ctx context.Context, identity *session.Identity) ([]*model.Draft, error) {
	if err := requireWriter(identity); err != nil {
		return nil, err
	}
	drafts, err := s.repo.ListByUser(ctx, identity.UserID)
	if err != nil {
		return nil, result.Internal(err)
	}
	return drafts, nil
}

func (s *draftService) DeleteDraft(ctx context.Context, identity *session.Identity, id uuid.UUID) (int64, error) {
	if err := requireWriter(identity); err != nil {
		return 0, err
	}

	var owner *uuid.UUID
	if !identity.IsAdmin() {
		owner = &identity.UserID
	}
	n, err := s.repo.DeleteByID(ctx, id, owner)
	if err != nil {
		return 0, result.Internal(err)
	}
	return n, nil
}

func (s *draftService) DeleteDraftByBlog(ctx context.Context, identity *session.Identity, blogID uuid.UUID) (int64, error) {
	if err := requireWriter(identity); err != nil {
		return 0, err
	}
	n, err := s.repo.DeleteByBlog(ctx, identity.UserID, blogID)
	if err != nil {
		return 0, result.Internal(err)
	}
	return n, nil
}

func (s *draftService) DeleteAllDrafts(ctx context.Context, identity *session.Identity) (int64, error) {
	if err := requireWriter(identity); err != nil {
		return 0, err
	}
	n, err := s.repo.DeleteAllByUser(ctx, identity.UserID)
	if err != nil {
		return 0, result.Internal(err)
	}
	log.Info().Str("user_id", identity.UserID.String()).Int64("deleted", n).Msg("drafts cleared")
	return n, nil
}
