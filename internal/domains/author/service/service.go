package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	auditModel "infinite-ideas-hub/internal/domains/audit/model"
	"infinite-ideas-hub/internal/domains/author/model"
	"infinite-ideas-hub/internal/domains/author/repository"
	blogModel "infinite-ideas-hub/internal/domains/blog/model"
	userModel "infinite-ideas-hub/internal/domains/user/model"
	"infinite-ideas-hub/internal/shared/result"
	"infinite-ideas-hub/internal/shared/session"
	"infinite-ideas-hub/internal/shared/utils"
)

const authorPageBlogLimit = 100

type authorService struct {
	repo       repository.Repository
	users      UserStore
	blogs      PublishedBlogLister
	audit      AuditRecorder
	identities IdentityInvalidator
	now        func() time.Time
}

func NewAuthorService(
	repo repository.Repository,
	users UserStore,
	blogs PublishedBlogLister,
	audit AuditRecorder,
	identities IdentityInvalidator,
) ServiceInterface {
	return &authorService{
		repo:       repo,
		users:      users,
		blogs:      blogs,
		audit:      audit,
		identities: identities,
		now:        time.Now,
	}
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
// PUBLIC READS
// =====================================================

func (s *authorService) List(ctx context.Context) ([]*model.Author, error) {
	authors, err := s.repo.List(ctx)
	if err != nil {
		return nil, result.Internal(err)
	}
	if authors == nil {
		authors = []*model.Author{}
	}
	return authors, nil
}

func (s *authorService) GetBySlug(ctx context.Context, slug string) (*model.AuthorWithBlogs, error) {
	a, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, internalUnlessKnown(err, model.ErrAuthorNotFound)
	}
	return s.withBlogs(ctx, a)
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*model.AuthorWithBlogs, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, internalUnlessKnown(err, model.ErrAuthorNotFound)
	}
	return s.withBlogs(ctx, a)
}

func (s *authorService) withBlogs(ctx context.Context, a *model.Author) (*model.AuthorWithBlogs, error) {
	blogs, _, err := s.blogs.ListPublished(ctx, blogModel.ListFilter{
		AuthorSlug: a.Slug,
		Page:       1,
		Limit:      authorPageBlogLimit,
	})
	if err != nil {
		return nil, result.Internal(err)
	}
	if blogs == nil {
		blogs = []*blogModel.Blog{}
	}
	return &model.AuthorWithBlogs{Author: a, Blogs: blogs}, nil
}

// =====================================================
// AUTHOR RESOLUTION
// =====================================================

func (s *authorService) ResolveForUser(ctx context.Context, identity *session.Identity) (*model.Author, error) {
	if identity == nil {
		return nil, session.ErrNoSession
	}

	if identity.AuthorID != nil {
		a, err := s.repo.FindByID(ctx, *identity.AuthorID)
		if err == nil {
			return a, nil
		}
		if !errors.Is(err, model.ErrAuthorNotFound) {
			return nil, model.ErrAuthorResolution.Wrap(err)
		}
	}

	a, err := s.repo.FindByUserID(ctx, identity.UserID)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, model.ErrAuthorNotFound) {
		return nil, model.ErrAuthorResolution.Wrap(err)
	}

	userID := identity.UserID
	placeholder := &model.Author{
		UserID:       &userID,
		Name:         model.UnknownAuthorName,
		ProfileImage: model.DefaultImage,
	}

	err = s.createWithUniqueSlug(ctx, placeholder, utils.FallbackSlug("author", s.now()), func(a *model.Author) error {
		return s.repo.Create(ctx, a)
	})
	switch {
	case err == nil:
		log.Info().Str("user_id", userID.String()).Str("author_id", placeholder.ID.String()).Msg("created placeholder author")
		s.identities.InvalidateIdentity(ctx, userID)
		return placeholder, nil
	case errors.Is(err, model.ErrAuthorExists):
		// lost a race with a concurrent request for the same user
		a, err := s.repo.FindByUserID(ctx, userID)
		if err != nil {
			return nil, model.ErrAuthorResolution.Wrap(err)
		}
		return a, nil
	default:
		return nil, model.ErrAuthorResolution.Wrap(err)
	}
}

// createWithUniqueSlug probes for a free slug and inserts, re-probing when
// the unique index wins a race.
func (s *authorService) createWithUniqueSlug(ctx context.Context, a *model.Author, candidate string, insert func(*model.Author) error) error {
	exists := func(ctx context.Context, slug string) (bool, error) {
		return s.repo.SlugExists(ctx, slug, nil)
	}

	for round := 0; round < utils.SlugWriteRounds; round++ {
		slug, err := utils.UniqueSlug(ctx, "author", candidate, exists)
		if err != nil {
			return err
		}
		a.Slug = slug

		err = insert(a)
		if errors.Is(err, model.ErrSlugTaken) {
			continue
		}
		return err
	}
	return utils.ErrSlugExhausted
}

// =====================================================
// PROMOTION
// =====================================================

func (s *authorService) Promote(ctx context.Context, admin *session.Identity, req model.PromoteRequest) (*model.PromoteResponse, []string, error) {
	if _, err := session.RequireRole(admin, session.RoleAdmin); err != nil {
		return nil, nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, nil, result.InvalidErr(err)
	}

	user, err := s.findUser(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	name := utils.StringOr(strings.TrimSpace(req.Name), user.Name)
	image := utils.StringOr(req.ProfileImage, user.Image)

	existing, err := s.repo.FindByUserID(ctx, user.ID)
	if err != nil && !errors.Is(err, model.ErrAuthorNotFound) {
		return nil, nil, result.Internal(err)
	}
	if existing != nil {
		if err := s.users.PromoteProfile(ctx, user.ID, name, image); err != nil {
			return nil, nil, internalUnlessKnown(err, userModel.ErrUserNotFound)
		}
		s.identities.InvalidateIdentity(ctx, user.ID)
		return &model.PromoteResponse{Author: existing, Message: "User is already an author"}, nil, nil
	}

	candidate := req.Slug
	if strings.TrimSpace(candidate) == "" {
		candidate = utils.StringOr(name, utils.FallbackSlug("author", s.now()))
	}

	userID := user.ID
	created := &model.Author{
		UserID:       &userID,
		Name:         name,
		Bio:          req.Bio,
		ProfileImage: image,
	}
	err = s.createWithUniqueSlug(ctx, created, candidate, func(a *model.Author) error {
		return s.repo.CreateForUser(ctx, a, name, image)
	})
	if err != nil {
		return nil, nil, internalUnlessKnown(err, utils.ErrSlugExhausted, model.ErrAuthorExists, model.ErrUserNotFound)
	}
	s.identities.InvalidateIdentity(ctx, user.ID)

	var warnings []string
	adminID := admin.UserID
	auditErr := s.audit.Record(ctx, auditModel.Entry{
		Action:     auditModel.ActionPromoteUserToAuthor,
		ByUserID:   &adminID,
		TargetType: auditModel.TargetUser,
		TargetID:   user.ID.String(),
		Meta: map[string]interface{}{
			"authorId":      created.ID.String(),
			"promotedName":  created.Name,
			"promotedEmail": user.Email,
		},
	})
	if auditErr != nil {
		warnings = append(warnings, "audit log entry could not be written")
	}

	return &model.PromoteResponse{Author: created, Created: true}, warnings, nil
}

func (s *authorService) findUser(ctx context.Context, req model.PromoteRequest) (*userModel.User, error) {
	var (
		user *userModel.User
		err  error
	)
	if req.UserID != "" {
		id, parseErr := uuid.Parse(req.UserID)
		if parseErr != nil {
			return nil, result.Invalid("invalid userId")
		}
		user, err = s.users.FindByID(ctx, id)
	} else {
		user, err = s.users.FindByEmail(ctx, strings.TrimSpace(req.Email))
	}

	if err != nil {
		if errors.Is(err, userModel.ErrUserNotFound) {
			return nil, model.ErrUserNotFound
		}
		return nil, result.Internal(err)
	}
	return user, nil
}

// =====================================================
// ADMIN UPDATE / DELETE
// =====================================================

func (s *authorService) Update(ctx context.Context, admin *session.Identity, id uuid.UUID, req model.UpdateRequest) (*model.Author, error) {
	if _, err := session.RequireRole(admin, session.RoleAdmin); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, result.InvalidErr(err)
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, internalUnlessKnown(err, model.ErrAuthorNotFound)
	}
	if req.IsEmpty() {
		return current, nil
	}

	patch := model.AuthorPatch{Bio: req.Bio, ProfileImage: req.ProfileImage}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		patch.Name = &name
	}

	exists := func(ctx context.Context, slug string) (bool, error) {
		return s.repo.SlugExists(ctx, slug, &id)
	}

	for round := 0; round < utils.SlugWriteRounds; round++ {
		if req.Slug != nil && strings.TrimSpace(*req.Slug) != "" {
			slug, err := utils.UniqueSlug(ctx, "author", *req.Slug, exists)
			if err != nil {
				return nil, internalUnlessKnown(err, utils.ErrSlugExhausted)
			}
			patch.Slug = &slug
		}

		updated, err := s.repo.Update(ctx, id, patch)
		if errors.Is(err, model.ErrSlugTaken) && patch.Slug != nil {
			continue
		}
		if err != nil {
			return nil, internalUnlessKnown(err, model.ErrAuthorNotFound, model.ErrSlugTaken)
		}

		if updated.UserID != nil {
			s.identities.InvalidateIdentity(ctx, *updated.UserID)
		}
		return updated, nil
	}
	return nil, utils.ErrSlugExhausted
}

func (s *authorService) Delete(ctx context.Context, admin *session.Identity, id uuid.UUID) error {
	if _, err := session.RequireRole(admin, session.RoleAdmin); err != nil {
		return err
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return internalUnlessKnown(err, model.ErrAuthorNotFound)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return internalUnlessKnown(err, model.ErrAuthorNotFound)
	}

	if current.UserID != nil {
		s.identities.InvalidateIdentity(ctx, *current.UserID)
	}
	return nil
}
