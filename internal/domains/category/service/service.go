package service

import (
	"context"
	"errors"
	"time"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog/log"

	blogModel "infinite-ideas-hub/internal/domains/blog/model"
	"infinite-ideas-hub/internal/domains/category/model"
	"infinite-ideas-hub/internal/domains/category/repository"
	"infinite-ideas-hub/internal/shared/result"
	"infinite-ideas-hub/internal/shared/session"
	"infinite-ideas-hub/internal/shared/utils"
)

const categoryPageBlogLimit = 100

type ServiceInterface interface {
	List(ctx context.Context) ([]*model.Category, error)
	GetBySlug(ctx context.Context, slug string) (*model.CategoryWithBlogs, error)
	Create(ctx context.Context, admin *session.Identity, req model.CreateRequest) (*model.Category, error)
}

type PublishedBlogLister interface {
	ListPublished(ctx context.Context, filter blogModel.ListFilter) ([]*blogModel.Blog, int, error)
}

type categoryService struct {
	repo  repository.Repository
	blogs PublishedBlogLister
	now   func() time.Time
}

func NewCategoryService(repo repository.Repository, blogs PublishedBlogLister) ServiceInterface {
	return &categoryService{repo: repo, blogs: blogs, now: time.Now}
}

func (s *categoryService) List(ctx context.Context) ([]*model.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, result.Internal(err)
	}
	return categories, nil
}

func (s *categoryService) GetBySlug(ctx context.Context, categorySlug string) (*model.CategoryWithBlogs, error) {
	c, err := s.repo.FindBySlug(ctx, categorySlug)
	if err != nil {
		if errors.Is(err, model.ErrCategoryNotFound) {
			return nil, err
		}
		return nil, result.Internal(err)
	}

	blogs, _, err := s.blogs.ListPublished(ctx, blogModel.ListFilter{
		Category: c.Name,
		Page:     1,
		Limit:    categoryPageBlogLimit,
	})
	if err != nil {
		return nil, result.Internal(err)
	}
	if blogs == nil {
		blogs = []*blogModel.Blog{}
	}
	return &model.CategoryWithBlogs{Category: c, Blogs: blogs}, nil
}

// Create stores a category. Names are transliterated into ASCII slugs,
// so "Café Culture" becomes "cafe-culture".
func (s *categoryService) Create(ctx context.Context, admin *session.Identity, req model.CreateRequest) (*model.Category, error) {
	if _, err := session.RequireRole(admin, session.RoleAdmin); err != nil {
		return nil, err
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, result.InvalidErr(err)
	}

	c := &model.Category{
		Name:          req.Name,
		Slug:          slug.Make(req.Name),
		Description:   req.Description,
		CategoryImage: utils.StringOr(req.CategoryImage, model.DefaultImage),
	}
	if c.Slug == "" {
		c.Slug = utils.FallbackSlug("category", s.now())
	}

	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, model.ErrCategoryExists) {
			return nil, err
		}
		return nil, result.Internal(err)
	}

	log.Info().Str("category", c.Slug).Str("by", admin.UserID.String()).Msg("category created")
	return c, nil
}
