package service

import (
	"context"

	"github.com/google/uuid"

	"infinite-ideas-hub/internal/domains/comment/model"
)

type ServiceInterface interface {
	Create(ctx context.Context, req model.CreateRequest) (*model.Comment, error)
	ListByBlog(ctx context.Context, blogID string) ([]*model.Comment, error)
}

type BlogChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
