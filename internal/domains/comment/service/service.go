package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"infinite-ideas-hub/internal/domains/comment/model"
	"infinite-ideas-hub/internal/domains/comment/repository"
	"infinite-ideas-hub/internal/shared/result"
	"infinite-ideas-hub/internal/shared/utils"
)

type commentService struct {
	repo  repository.Repository
	blogs BlogChecker
}

func NewCommentService(repo repository.Repository, blogs BlogChecker) ServiceInterface {
	return &commentService{repo: repo, blogs: blogs}
}

func (s *commentService) Create(ctx context.Context, req model.CreateRequest) (*model.Comment, error) {
	req.Name = utils.SanitizeText(req.Name)
	req.Message = utils.SanitizeText(req.Message)
	if err := req.Validate(); err != nil {
		return nil, result.InvalidErr(err)
	}

	blogID := uuid.MustParse(req.BlogID)
	exists, err := s.blogs.Exists(ctx, blogID)
	if err != nil {
		return nil, result.Internal(err)
	}
	if !exists {
		return nil, model.ErrBlogNotFound
	}

	c := &model.Comment{BlogID: blogID, Name: req.Name, Message: req.Message}
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, model.ErrBlogNotFound) {
			return nil, err
		}
		return nil, result.Internal(err)
	}
	return c, nil
}

func (s *commentService) ListByBlog(ctx context.Context, blogID string) ([]*model.Comment, error) {
	blogID = strings.TrimSpace(blogID)
	if blogID == "" {
		return nil, model.ErrBlogIDRequired
	}
	id, err := uuid.Parse(blogID)
	if err != nil {
		return nil, result.Invalid("invalid blogId")
	}

	comments, err := s.repo.ListByBlog(ctx, id)
	if err != nil {
		return nil, result.Internal(err)
	}
	return comments, nil
}
