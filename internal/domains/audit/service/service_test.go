package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"infinite-ideas-hub/internal/domains/audit/model"
	"infinite-ideas-hub/internal/shared/result"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Insert(ctx context.Context, e *model.Entry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockRepo) List(ctx context.Context, req model.ListRequest) ([]*model.Entry, int, error) {
	args := m.Called(ctx, req)
	entries, _ := args.Get(0).([]*model.Entry)
	return entries, args.Int(1), args.Error(2)
}

func TestRecord_ReturnsInsertErrorWithoutPanicking(t *testing.T) {
	repo := new(mockRepo)
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(e *model.Entry) bool {
		return e.Action == model.ActionChangeUserRole
	})).Return(errors.New("db down"))

	err := NewAuditService(repo).Record(context.Background(), model.Entry{Action: model.ActionChangeUserRole})
	assert.Error(t, err)
	repo.AssertExpectations(t)
}

func TestList_WrapsStorageFaultAsInternal(t *testing.T) {
	repo := new(mockRepo)
	repo.On("List", mock.Anything, mock.Anything).Return(nil, 0, errors.New("boom"))

	_, _, err := NewAuditService(repo).List(context.Background(), model.ListRequest{Page: 1, Limit: 10})
	assert.Equal(t, result.KindInternal, result.KindOf(err))
}
