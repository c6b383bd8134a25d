package repository

import (
	"context"

	"infinite-ideas-hub/internal/domains/audit/model"
)

type Repository interface {
	Insert(ctx context.Context, e *model.Entry) error
	List(ctx context.Context, req model.ListRequest) ([]*model.Entry, int, error)
}
