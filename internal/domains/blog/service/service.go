package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	authorModel "infinite-ideas-hub/internal/domains/author/model"
	"infinite-ideas-hub/internal/domains/blog/model"
	"infinite-ideas-hub/internal/domains/blog/repository"
	"infinite-ideas-hub/internal/shared/result"
	"infinite-ideas-hub/internal/shared/session"
	"infinite-ideas-hub/internal/shared/utils"
	"infinite-ideas-hub/pkg/cache"
)

var ErrBlogStillExists = result.Conflict("blog still exists, update it instead")

type blogService struct {
	repo    repository.Repository
	authors AuthorResolver
	cache   cache.Cache
}

func NewBlogService(repo repository.Repository, authors AuthorResolver, c cache.Cache) ServiceInterface {
	return &blogService{
		repo:    repo,
		authors: authors,
		cache:   c,
	}
}

func likesKey(blogID uuid.UUID) string {
	return "blog:likes:" + blogID.String()
}

func internalUnlessKnown(err error, known ...error) error {
	for _, k := range known {
		if errors.Is(err, k) {
			return err
		}
	}
	return result.Internal(err)
}

// =====================================================
// AUTHORING
// =====================================================

func (s *blogService) CreateBlog(ctx context.Context, identity *session.Identity, req model.CreateRequest) (*model.Blog, error) {
	if _, err := session.RequireRole(identity, session.RoleAuthor, session.RoleAdmin); err != nil {
		return nil, err
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, result.InvalidErr(err)
	}
	return s.create(ctx, identity, req)
}

func (s *blogService) create(ctx context.Context, identity *session.Identity, req model.CreateRequest) (*model.Blog, error) {
	if req.Status == model.StatusPublished {
		if err := model.CheckGuards(req.Title, utils.SanitizeHTML(req.Description)); err != nil {
			return nil, err
		}
	}

	author, err := s.authors.ResolveForUser(ctx, identity)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) || errors.Is(err, authorModel.ErrAuthorResolution) {
			return nil, err
		}
		return nil, authorModel.ErrAuthorResolution.Wrap(err)
	}

	authorID := author.ID
	blog := &model.Blog{
		Title:       req.Title,
		Description: utils.SanitizeHTML(req.Description),
		Image:       utils.StringOr(req.Image, model.DefaultImage),
		Category:    utils.StringOr(req.Category, model.DefaultCategory),
		Status:      req.Status,
		AuthorID:    &authorID,
		AuthorName:  author.Name,
		AuthorSlug:  author.Slug,
	}

	candidate := utils.StringOr(strings.TrimSpace(req.Slug), req.Title)
	exists := func(ctx context.Context, slug string) (bool, error) {
		return s.repo.SlugExists(ctx, slug, nil)
	}

	for round := 0; round < utils.SlugWriteRounds; round++ {
		slug, err := utils.UniqueSlug(ctx, "blog", candidate, exists)
		if err != nil {
			return nil, internalUnlessKnown(err, utils.ErrSlugExhausted)
		}
		blog.Slug = slug

		err = s.repo.Create(ctx, blog)
		if errors.Is(err, model.ErrSlugTaken) {
			continue
		}
		if err != nil {
			return nil, result.Internal(err)
		}

		log.Info().
			Str("blog_id", blog.ID.String()).
			Str("slug", blog.Slug).
			Str("status", string(blog.Status)).
			Msg("blog created")
		return blog, nil
	}
	return nil, utils.ErrSlugExhausted
}

func (s *blogService) UpdateBlog(ctx context.Context, identity *session.Identity, id uuid.UUID, req model.UpdateRequest) (*model.Blog, error) {
	if _, err := session.RequireRole(identity, session.RoleAuthor, session.RoleAdmin); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, result.InvalidErr(err)
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, internalUnlessKnown(err, model.ErrBlogNotFound)
	}
	if err := session.CanModifyBlog(identity, current.AuthorID); err != nil {
		return nil, err
	}

	patch := buildPatch(req)
	slugHint := ""
	if req.Slug != nil {
		slugHint = strings.TrimSpace(*req.Slug)
	}
	if patch.IsEmpty() && slugHint == "" {
		return current, nil
	}
	if err := checkMergedGuards(current, patch); err != nil {
		return nil, err
	}

	exists := func(ctx context.Context, slug string) (bool, error) {
		return s.repo.SlugExists(ctx, slug, &id)
	}

	for round := 0; round < utils.SlugWriteRounds; round++ {
		if slugHint != "" {
			slug, err := utils.UniqueSlug(ctx, "blog", slugHint, exists)
			if err != nil {
				return nil, internalUnlessKnown(err, utils.ErrSlugExhausted)
			}
			patch.Slug = &slug
		}

		updated, err := s.repo.Update(ctx, id, patch)
		if errors.Is(err, model.ErrSlugTaken) && slugHint != "" {
			continue
		}
		if err != nil {
			return nil, internalUnlessKnown(err, model.ErrBlogNotFound, model.ErrSlugTaken)
		}
		return updated, nil
	}
	return nil, utils.ErrSlugExhausted
}

// buildPatch resolves request fields into stored values: titles trimmed,
// descriptions sanitized, blank image/category reset to defaults.
func buildPatch(req model.UpdateRequest) model.Patch {
	var p model.Patch
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		p.Title = &title
	}
	if req.Description != nil {
		desc := utils.SanitizeHTML(*req.Description)
		p.Description = &desc
	}
	if req.Image != nil {
		image := utils.StringOr(strings.TrimSpace(*req.Image), model.DefaultImage)
		p.Image = &image
	}
	if req.Category != nil {
		category := utils.StringOr(strings.TrimSpace(*req.Category), model.DefaultCategory)
		p.Category = &category
	}
	if req.Status != nil {
		status := *req.Status
		p.Status = &status
	}
	return p
}

// checkMergedGuards applies the publish guards to the stored blog with the
// patch laid over it, whenever the result would be published.
func checkMergedGuards(current *model.Blog, patch model.Patch) error {
	status := current.Status
	if patch.Status != nil {
		status = *patch.Status
	}
	if status != model.StatusPublished {
		return nil
	}

	title, description := current.Title, current.Description
	if patch.Title != nil {
		title = *patch.Title
	}
	if patch.Description != nil {
		description = *patch.Description
	}
	return model.CheckGuards(title, description)
}

func (s *blogService) RecoverBlog(ctx context.Context, identity *session.Identity, req model.RecoverRequest) (*model.Blog, error) {
	if _, err := session.RequireRole(identity, session.RoleAuthor, session.RoleAdmin); err != nil {
		return nil, err
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, result.InvalidErr(err)
	}

	if req.MissingID != "" {
		if id, err := uuid.Parse(req.MissingID); err == nil {
			exists, err := s.repo.Exists(ctx, id)
			if err != nil {
				return nil, result.Internal(err)
			}
			if exists {
				return nil, ErrBlogStillExists
			}
		}
	}

	blog, err := s.create(ctx, identity, req.CreateRequest)
	if err != nil {
		return nil, err
	}
	log.Warn().
		Str("missing_id", req.MissingID).
		Str("blog_id", blog.ID.String()).
		Msg("blog recreated after its edit target disappeared")
	return blog, nil
}

// =====================================================
// PUBLIC READS
// =====================================================

func (s *blogService) GetBySlug(ctx context.Context, slug string) (*model.Blog, error) {
	b, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, internalUnlessKnown(err, model.ErrBlogNotFound)
	}
	return b, nil
}

func (s *blogService) GetByID(ctx context.Context, id uuid.UUID) (*model.Blog, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, internalUnlessKnown(err, model.ErrBlogNotFound)
	}
	return b, nil
}

func (s *blogService) ListPublished(ctx context.Context, filter model.ListFilter) ([]*model.Blog, int, error) {
	blogs, total, err := s.repo.ListPublished(ctx, filter)
	if err != nil {
		return nil, 0, result.Internal(err)
	}
	return blogs, total, nil
}

func (s *blogService) Featured(ctx context.Context) (*model.Blog, error) {
	b, err := s.repo.Featured(ctx)
	if err != nil {
		return nil, internalUnlessKnown(err, model.ErrBlogNotFound)
	}
	return b, nil
}

func (s *blogService) NextOrOldest(ctx context.Context, slug string) (*model.Blog, error) {
	current, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, internalUnlessKnown(err, model.ErrBlogNotFound)
	}
	next, err := s.repo.NextOrOldest(ctx, current)
	if err != nil {
		return nil, internalUnlessKnown(err, model.ErrBlogNotFound)
	}
	return next, nil
}

// =====================================================
// LIKES
// =====================================================

func (s *blogService) Like(ctx context.Context, slug, clientKey string) (*model.LikeResponse, error) {
	return s.adjustLikes(ctx, slug, clientKey, 1)
}

func (s *blogService) Unlike(ctx context.Context, slug, clientKey string) (*model.LikeResponse, error) {
	return s.adjustLikes(ctx, slug, clientKey, -1)
}

// adjustLikes changes the counter only when the client's membership in the
// blog's like set changed. When the set is unreachable the change is applied
// unconditionally.
func (s *blogService) adjustLikes(ctx context.Context, slug, clientKey string, delta int) (*model.LikeResponse, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, result.Invalid("slug is required")
	}

	current, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, internalUnlessKnown(err, model.ErrBlogNotFound)
	}

	key := likesKey(current.ID)
	tracked := clientKey != ""
	changed := true
	if tracked {
		var setErr error
		if delta > 0 {
			changed, setErr = s.cache.AddToSet(ctx, key, clientKey)
		} else {
			changed, setErr = s.cache.RemoveFromSet(ctx, key, clientKey)
		}
		if setErr != nil {
			log.Warn().Err(setErr).Str("slug", slug).Msg("like tracking unavailable, applying change unconditionally")
			changed, tracked = true, false
		}
	}
	if !changed {
		return &model.LikeResponse{Likes: current.Likes}, nil
	}

	likes, err := s.repo.AddLikes(ctx, slug, delta)
	if err != nil {
		if tracked {
			s.revertMembership(ctx, key, clientKey, delta)
		}
		return nil, internalUnlessKnown(err, model.ErrBlogNotFound)
	}
	return &model.LikeResponse{Likes: likes, Changed: true}, nil
}

func (s *blogService) revertMembership(ctx context.Context, key, member string, delta int) {
	var err error
	if delta > 0 {
		_, err = s.cache.RemoveFromSet(ctx, key, member)
	} else {
		_, err = s.cache.AddToSet(ctx, key, member)
	}
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to revert like membership")
	}
}

// =====================================================
// ADMIN
// =====================================================

func (s *blogService) AdminList(ctx context.Context, admin *session.Identity, filter model.AdminFilter) ([]*model.Blog, int, error) {
	if _, err := session.RequireRole(admin, session.RoleAdmin); err != nil {
		return nil, 0, err
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, 0, result.Invalid("status must be draft or published")
	}

	blogs, total, err := s.repo.AdminList(ctx, filter)
	if err != nil {
		return nil, 0, result.Internal(err)
	}
	return blogs, total, nil
}

func (s *blogService) Delete(ctx context.Context, admin *session.Identity, id uuid.UUID) error {
	if _, err := session.RequireRole(admin, session.RoleAdmin); err != nil {
		return err
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return internalUnlessKnown(err, model.ErrBlogNotFound)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return internalUnlessKnown(err, model.ErrBlogNotFound)
	}

	if err := s.cache.Delete(ctx, likesKey(current.ID)); err != nil {
		log.Warn().Err(err).Str("slug", current.Slug).Msg("failed to drop like set")
	}
	log.Info().Str("blog_id", id.String()).Str("by", admin.UserID.String()).Msg("blog deleted")
	return nil
}
