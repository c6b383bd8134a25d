package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"infinite-ideas-hub/internal/domains/audit/model"
	"infinite-ideas-hub/internal/domains/audit/repository"
	"infinite-ideas-hub/internal/shared/result"
)

type ServiceInterface interface {
	// Record persists e. It never fails the caller; the returned error is
	// only informational so callers can surface a warning.
	Record(ctx context.Context, e model.Entry) error
	List(ctx context.Context, req model.ListRequest) ([]*model.Entry, int, error)
}

type auditService struct {
	repo repository.Repository
}

func NewAuditService(repo repository.Repository) ServiceInterface {
	return &auditService{repo: repo}
}

func (s *auditService) Record(ctx context.Context, e model.Entry) error {
	if err := s.repo.Insert(ctx, &e); err != nil {
		log.Warn().Err(err).
			Str("action", e.Action).
			Str("target_id", e.TargetID).
			Msg("[Audit] logging failed")
		return err
	}
	return nil
}

func (s *auditService) List(ctx context.Context, req model.ListRequest) ([]*model.Entry, int, error) {
	entries, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, 0, result.Internal(err)
	}
	return entries, total, nil
}
