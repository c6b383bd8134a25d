package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	blogModel "infinite-ideas-hub/internal/domains/blog/model"
	"infinite-ideas-hub/internal/domains/publish/model"
	"infinite-ideas-hub/internal/shared/result"
	"infinite-ideas-hub/internal/shared/session"
)

const draftCleanupWarning = "published, but the draft could not be removed"

type publishService struct {
	blogs  BlogStore
	drafts DraftRemover
}

func NewPublishService(blogs BlogStore, drafts DraftRemover) ServiceInterface {
	return &publishService{blogs: blogs, drafts: drafts}
}

func (s *publishService) Publish(ctx context.Context, identity *session.Identity, req model.PublishRequest) (*model.PublishResponse, []string, error) {
	if _, err := session.RequireRole(identity, session.RoleAuthor, session.RoleAdmin); err != nil {
		return nil, nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, nil, result.InvalidErr(err)
	}
	if err := blogModel.CheckGuards(req.Title, req.Description); err != nil {
		return nil, nil, err
	}

	published := blogModel.StatusPublished
	var (
		blog    *blogModel.Blog
		blogID  *uuid.UUID
		created bool
		err     error
	)
	if req.BlogID != "" {
		id := uuid.MustParse(req.BlogID)
		blogID = &id

		update := blogModel.UpdateRequest{
			Title:       &req.Title,
			Description: &req.Description,
			Image:       &req.Image,
			Category:    &req.Category,
			Status:      &published,
		}
		if strings.TrimSpace(req.Slug) != "" {
			update.Slug = &req.Slug
		}
		blog, err = s.blogs.UpdateBlog(ctx, identity, id, update)
	} else {
		blog, err = s.blogs.CreateBlog(ctx, identity, blogModel.CreateRequest{
			Title:       req.Title,
			Description: req.Description,
			Image:       req.Image,
			Category:    req.Category,
			Slug:        req.Slug,
			Status:      published,
		})
		created = true
	}
	if err != nil {
		return nil, nil, err
	}

	var warnings []string
	if err := s.removeDraft(ctx, identity, req.DraftID, blogID); err != nil {
		log.Warn().
			Err(err).
			Str("blog_id", blog.ID.String()).
			Str("draft_id", req.DraftID).
			Msg("draft cleanup after publish failed")
		warnings = append(warnings, draftCleanupWarning)
	}

	log.Info().
		Str("blog_id", blog.ID.String()).
		Str("slug", blog.Slug).
		Bool("created", created).
		Msg("blog published")
	return &model.PublishResponse{Blog: blog, Created: created}, warnings, nil
}

// removeDraft deletes the source draft by id, or by (user, blog) when only
// the blog is known. A missing draft is not an error.
func (s *publishService) removeDraft(ctx context.Context, identity *session.Identity, draftID string, blogID *uuid.UUID) error {
	switch {
	case draftID != "":
		_, err := s.drafts.DeleteDraft(ctx, identity, uuid.MustParse(draftID))
		return err
	case blogID != nil:
		_, err := s.drafts.DeleteDraftByBlog(ctx, identity, *blogID)
		return err
	}
	return nil
}

func (s *publishService) Unpublish(ctx context.Context, identity *session.Identity, blogID uuid.UUID) (*blogModel.Blog, error) {
	if _, err := session.RequireRole(identity, session.RoleAuthor, session.RoleAdmin); err != nil {
		return nil, err
	}
	draft := blogModel.StatusDraft
	return s.blogs.UpdateBlog(ctx, identity, blogID, blogModel.UpdateRequest{Status: &draft})
}

func (s *publishService) AdminAction(ctx context.Context, admin *session.Identity, req model.AdminActionRequest) (*model.AdminActionResponse, error) {
	if _, err := session.RequireRole(admin, session.RoleAdmin); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, result.InvalidErr(err)
	}

	id := uuid.MustParse(req.ID)
	resp := &model.AdminActionResponse{ID: req.ID, Action: req.Action}

	switch req.Action {
	case model.ActionPublish:
		current, err := s.blogs.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := blogModel.CheckGuards(current.Title, current.Description); err != nil {
			return nil, err
		}
		status := blogModel.StatusPublished
		resp.Blog, err = s.blogs.UpdateBlog(ctx, admin, id, blogModel.UpdateRequest{Status: &status})
		if err != nil {
			return nil, err
		}
	case model.ActionUnpublish:
		status := blogModel.StatusDraft
		blog, err := s.blogs.UpdateBlog(ctx, admin, id, blogModel.UpdateRequest{Status: &status})
		if err != nil {
			return nil, err
		}
		resp.Blog = blog
	case model.ActionDelete:
		if err := s.blogs.Delete(ctx, admin, id); err != nil {
			return nil, err
		}
	}

	log.Info().
		Str("blog_id", req.ID).
		Str("action", string(req.Action)).
		Str("by", admin.UserID.String()).
		Msg("admin post action")
	return resp, nil
}
