package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	blogModel "infinite-ideas-hub/internal/domains/blog/model"
	"infinite-ideas-hub/internal/domains/publish/model"
	"infinite-ideas-hub/internal/shared/result"
	"infinite-ideas-hub/internal/shared/session"
)

// memoryBlogs is a minimal blog store: create assigns ids, update
// overwrites the supplied fields.
type memoryBlogs struct {
	blogs   map[uuid.UUID]*blogModel.Blog
	creates int
}

func newMemoryBlogs() *memoryBlogs {
	return &memoryBlogs{blogs: make(map[uuid.UUID]*blogModel.Blog)}
}

func (m *memoryBlogs) CreateBlog(_ context.Context, _ *session.Identity, req blogModel.CreateRequest) (*blogModel.Blog, error) {
	m.creates++
	b := &blogModel.Blog{ID: uuid.New(), Title: req.Title, Description: req.Description, Status: req.Status, Slug: "new-post"}
	m.blogs[b.ID] = b
	return b, nil
}

func (m *memoryBlogs) UpdateBlog(_ context.Context, _ *session.Identity, id uuid.UUID, req blogModel.UpdateRequest) (*blogModel.Blog, error) {
	b, ok := m.blogs[id]
	if !ok {
		return nil, blogModel.ErrBlogNotFound
	}
	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.Description != nil {
		b.Description = *req.Description
	}
	if req.Status != nil {
		b.Status = *req.Status
	}
	cp := *b
	return &cp, nil
}

func (m *memoryBlogs) GetByID(_ context.Context, id uuid.UUID) (*blogModel.Blog, error) {
	b, ok := m.blogs[id]
	if !ok {
		return nil, blogModel.ErrBlogNotFound
	}
	return b, nil
}

func (m *memoryBlogs) Delete(_ context.Context, _ *session.Identity, id uuid.UUID) error {
	if _, ok := m.blogs[id]; !ok {
		return blogModel.ErrBlogNotFound
	}
	delete(m.blogs, id)
	return nil
}

type mockDrafts struct{ mock.Mock }

func (m *mockDrafts) DeleteDraft(ctx context.Context, identity *session.Identity, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, identity, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockDrafts) DeleteDraftByBlog(ctx context.Context, identity *session.Identity, blogID uuid.UUID) (int64, error) {
	args := m.Called(ctx, identity, blogID)
	return args.Get(0).(int64), args.Error(1)
}

var (
	author = &session.Identity{UserID: uuid.New(), Role: session.RoleAuthor}
	admin  = &session.Identity{UserID: uuid.New(), Role: session.RoleAdmin}
)

const body = "<p>This body has well over twenty characters.</p>"

func TestPublish_GuardsRejectThinContent(t *testing.T) {
	svc := NewPublishService(newMemoryBlogs(), new(mockDrafts))

	_, _, err := svc.Publish(context.Background(), author, model.PublishRequest{Title: "Hi", Description: body})
	assert.ErrorIs(t, err, blogModel.ErrTitleTooShort)

	_, _, err = svc.Publish(context.Background(), author, model.PublishRequest{
		Title:       "Good title",
		Description: "<p>&nbsp;short&amp;</p><br/>",
	})
	assert.ErrorIs(t, err, blogModel.ErrContentTooShort)
	assert.Equal(t, result.KindInvalidInput, result.KindOf(err))
}

func TestPublish_NewBlogRemovesDraftByID(t *testing.T) {
	blogs := newMemoryBlogs()
	drafts := new(mockDrafts)
	svc := NewPublishService(blogs, drafts)
	draftID := uuid.New()
	drafts.On("DeleteDraft", mock.Anything, author, draftID).Return(int64(1), nil)

	resp, warnings, err := svc.Publish(context.Background(), author, model.PublishRequest{
		DraftID: draftID.String(), Title: "Fresh post", Description: body,
	})

	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.True(t, resp.Created)
	assert.Equal(t, blogModel.StatusPublished, resp.Blog.Status)
	drafts.AssertExpectations(t)
}

func TestPublish_RepeatedPublishUpdatesSameBlog(t *testing.T) {
	blogs := newMemoryBlogs()
	drafts := new(mockDrafts)
	svc := NewPublishService(blogs, drafts)
	existing := &blogModel.Blog{ID: uuid.New(), Title: "Old", Status: blogModel.StatusDraft}
	blogs.blogs[existing.ID] = existing
	drafts.On("DeleteDraftByBlog", mock.Anything, author, existing.ID).Return(int64(0), nil)

	req := model.PublishRequest{BlogID: existing.ID.String(), Title: "Updated title", Description: body}
	first, _, err := svc.Publish(context.Background(), author, req)
	require.NoError(t, err)
	second, _, err := svc.Publish(context.Background(), author, req)
	require.NoError(t, err)

	assert.False(t, first.Created)
	assert.Equal(t, first.Blog.ID, second.Blog.ID)
	assert.Equal(t, "Updated title", second.Blog.Title)
	assert.Equal(t, blogModel.StatusPublished, second.Blog.Status)
	assert.Zero(t, blogs.creates)
	assert.Len(t, blogs.blogs, 1)
}

func TestPublish_MissingBlogIsNotFound(t *testing.T) {
	svc := NewPublishService(newMemoryBlogs(), new(mockDrafts))

	_, _, err := svc.Publish(context.Background(), author, model.PublishRequest{
		BlogID: uuid.NewString(), Title: "Some title", Description: body,
	})
	assert.Equal(t, result.KindNotFound, result.KindOf(err))
}

func TestPublish_DraftCleanupFailureIsWarning(t *testing.T) {
	drafts := new(mockDrafts)
	svc := NewPublishService(newMemoryBlogs(), drafts)
	draftID := uuid.New()
	drafts.On("DeleteDraft", mock.Anything, author, draftID).Return(int64(0), errors.New("db down"))

	resp, warnings, err := svc.Publish(context.Background(), author, model.PublishRequest{
		DraftID: draftID.String(), Title: "Fresh post", Description: body,
	})
	require.NoError(t, err)
	assert.NotNil(t, resp.Blog)
	assert.Equal(t, []string{draftCleanupWarning}, warnings)
}

func TestPublish_ReaderForbidden(t *testing.T) {
	svc := NewPublishService(newMemoryBlogs(), new(mockDrafts))
	reader := &session.Identity{UserID: uuid.New(), Role: session.RoleUser}

	_, _, err := svc.Publish(context.Background(), reader, model.PublishRequest{Title: "Fresh post", Description: body})
	assert.Equal(t, result.KindForbidden, result.KindOf(err))
}

func TestUnpublish(t *testing.T) {
	blogs := newMemoryBlogs()
	svc := NewPublishService(blogs, new(mockDrafts))
	b := &blogModel.Blog{ID: uuid.New(), Status: blogModel.StatusPublished}
	blogs.blogs[b.ID] = b

	got, err := svc.Unpublish(context.Background(), author, b.ID)
	require.NoError(t, err)
	assert.Equal(t, blogModel.StatusDraft, got.Status)
}

func TestAdminAction(t *testing.T) {
	t.Run("publish re-runs guards on stored content", func(t *testing.T) {
		blogs := newMemoryBlogs()
		svc := NewPublishService(blogs, new(mockDrafts))
		thin := &blogModel.Blog{ID: uuid.New(), Title: "Fine title", Description: "<p>tiny</p>", Status: blogModel.StatusDraft}
		blogs.blogs[thin.ID] = thin

		_, err := svc.AdminAction(context.Background(), admin, model.AdminActionRequest{ID: thin.ID.String(), Action: model.ActionPublish})
		assert.ErrorIs(t, err, blogModel.ErrContentTooShort)
		assert.Equal(t, blogModel.StatusDraft, thin.Status)
	})

	t.Run("publish and delete", func(t *testing.T) {
		blogs := newMemoryBlogs()
		svc := NewPublishService(blogs, new(mockDrafts))
		b := &blogModel.Blog{ID: uuid.New(), Title: "Fine title", Description: body, Status: blogModel.StatusDraft}
		blogs.blogs[b.ID] = b

		resp, err := svc.AdminAction(context.Background(), admin, model.AdminActionRequest{ID: b.ID.String(), Action: model.ActionPublish})
		require.NoError(t, err)
		assert.Equal(t, blogModel.StatusPublished, resp.Blog.Status)

		_, err = svc.AdminAction(context.Background(), admin, model.AdminActionRequest{ID: b.ID.String(), Action: model.ActionDelete})
		require.NoError(t, err)
		assert.Empty(t, blogs.blogs)
	})

	t.Run("rejects unknown action and non-admins", func(t *testing.T) {
		svc := NewPublishService(newMemoryBlogs(), new(mockDrafts))

		_, err := svc.AdminAction(context.Background(), admin, model.AdminActionRequest{ID: uuid.NewString(), Action: "archive"})
		assert.Equal(t, result.KindInvalidInput, result.KindOf(err))

		_, err = svc.AdminAction(context.Background(), author, model.AdminActionRequest{ID: uuid.NewString(), Action: model.ActionDelete})
		assert.Equal(t, result.KindForbidden, result.KindOf(err))
	})
}
