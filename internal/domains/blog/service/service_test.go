package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authorModel "infinite-ideas-hub/internal/domains/author/model"
	"infinite-ideas-hub/internal/domains/blog/model"
	"infinite-ideas-hub/internal/shared/result"
	"infinite-ideas-hub/internal/shared/session"
	"infinite-ideas-hub/pkg/cache"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Create(ctx context.Context, b *model.Blog) error {
	err := m.Called(ctx, b).Error(0)
	if err == nil {
		b.ID = uuid.New()
	}
	return err
}

func (m *mockRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Blog, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*model.Blog)
	return b, args.Error(1)
}

func (m *mockRepo) FindBySlug(ctx context.Context, slug string) (*model.Blog, error) {
	args := m.Called(ctx, slug)
	b, _ := args.Get(0).(*model.Blog)
	return b, args.Error(1)
}

func (m *mockRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) ListPublished(ctx context.Context, f model.ListFilter) ([]*model.Blog, int, error) {
	args := m.Called(ctx, f)
	b, _ := args.Get(0).([]*model.Blog)
	return b, args.Int(1), args.Error(2)
}

func (m *mockRepo) Featured(ctx context.Context) (*model.Blog, error) {
	args := m.Called(ctx)
	b, _ := args.Get(0).(*model.Blog)
	return b, args.Error(1)
}

func (m *mockRepo) NextOrOldest(ctx context.Context, current *model.Blog) (*model.Blog, error) {
	args := m.Called(ctx, current)
	b, _ := args.Get(0).(*model.Blog)
	return b, args.Error(1)
}

func (m *mockRepo) AdminList(ctx context.Context, f model.AdminFilter) ([]*model.Blog, int, error) {
	args := m.Called(ctx, f)
	b, _ := args.Get(0).([]*model.Blog)
	return b, args.Int(1), args.Error(2)
}

func (m *mockRepo) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, id uuid.UUID, patch model.Patch) (*model.Blog, error) {
	args := m.Called(ctx, id, patch)
	b, _ := args.Get(0).(*model.Blog)
	return b, args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) AddLikes(ctx context.Context, slug string, delta int) (int, error) {
	args := m.Called(ctx, slug, delta)
	return args.Int(0), args.Error(1)
}

func (m *mockRepo) Count(ctx context.Context, status *model.Status) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

type stubAuthors struct {
	author *authorModel.Author
	err    error
}

func (s stubAuthors) ResolveForUser(context.Context, *session.Identity) (*authorModel.Author, error) {
	return s.author, s.err
}

// failingCache reports every set operation as unavailable.
type failingCache struct{ cache.Cache }

func (failingCache) AddToSet(context.Context, string, string) (bool, error) {
	return false, errors.New("redis down")
}

func (failingCache) RemoveFromSet(context.Context, string, string) (bool, error) {
	return false, errors.New("redis down")
}

var (
	testAuthor = &authorModel.Author{ID: uuid.New(), Name: "Alice", Slug: "alice"}
	owner      = &session.Identity{UserID: uuid.New(), Role: session.RoleAuthor, AuthorID: &testAuthor.ID}
	admin      = &session.Identity{UserID: uuid.New(), Role: session.RoleAdmin}
)

func newService(repo *mockRepo) *blogService {
	return NewBlogService(repo, stubAuthors{author: testAuthor}, cache.NewMemoryCache()).(*blogService)
}

func ptr[T any](v T) *T { return &v }

// =====================================================
// CREATE
// =====================================================

func TestCreateBlog_SanitizesAndSuffixesSlug(t *testing.T) {
	repo := new(mockRepo)
	svc := newService(repo)

	repo.On("SlugExists", mock.Anything, "my-post", (*uuid.UUID)(nil)).Return(true, nil)
	repo.On("SlugExists", mock.Anything, "my-post-1", (*uuid.UUID)(nil)).Return(false, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	blog, err := svc.CreateBlog(context.Background(), owner, model.CreateRequest{
		Title:       "  My Post ",
		Description: `<p>Hello</p><script>alert(1)</script>`,
	})

	require.NoError(t, err)
	assert.Equal(t, "my-post-1", blog.Slug)
	assert.Equal(t, "My Post", blog.Title)
	assert.Equal(t, "<p>Hello</p>", blog.Description)
	assert.Equal(t, model.DefaultImage, blog.Image)
	assert.Equal(t, model.DefaultCategory, blog.Category)
	assert.Equal(t, model.StatusDraft, blog.Status)
	assert.Equal(t, "Alice", blog.AuthorName)
	assert.Equal(t, "alice", blog.AuthorSlug)
	assert.Equal(t, testAuthor.ID, *blog.AuthorID)
}

func TestCreateBlog_GateRunsBeforeValidation(t *testing.T) {
	repo := new(mockRepo)
	svc := newService(repo)

	_, err := svc.CreateBlog(context.Background(), nil, model.CreateRequest{})
	assert.Equal(t, result.KindUnauthenticated, result.KindOf(err))

	reader := &session.Identity{UserID: uuid.New(), Role: session.RoleUser}
	_, err = svc.CreateBlog(context.Background(), reader, model.CreateRequest{})
	assert.Equal(t, result.KindForbidden, result.KindOf(err))

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBlog_ValidationFailsBeforeStorage(t *testing.T) {
	repo := new(mockRepo)
	svc := newService(repo)

	cases := []model.CreateRequest{
		{Title: "Hi", Description: "long enough description"},
		{Title: "Fine title", Description: "short"},
		{Title: "Fine title", Description: "long enough description", Image: "not a url"},
		{Title: "Fine title", Description: "long enough description", Status: "archived"},
	}
	for _, req := range cases {
		_, err := svc.CreateBlog(context.Background(), owner, req)
		assert.Equal(t, result.KindInvalidInput, result.KindOf(err), "%+v", req)
	}
	repo.AssertNotCalled(t, "SlugExists", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBlog_AuthorResolutionFailure(t *testing.T) {
	repo := new(mockRepo)
	svc := NewBlogService(repo, stubAuthors{err: errors.New("db gone")}, cache.NewMemoryCache())

	_, err := svc.CreateBlog(context.Background(), owner, model.CreateRequest{
		Title: "Valid title", Description: "long enough description",
	})
	assert.ErrorIs(t, err, authorModel.ErrAuthorResolution)
	assert.Equal(t, result.KindInternal, result.KindOf(err))
}

func TestCreateBlog_RetriesProbeOnUniqueViolation(t *testing.T) {
	repo := new(mockRepo)
	svc := newService(repo)

	repo.On("SlugExists", mock.Anything, "race", (*uuid.UUID)(nil)).Return(false, nil).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(model.ErrSlugTaken).Once()
	repo.On("SlugExists", mock.Anything, "race", (*uuid.UUID)(nil)).Return(true, nil).Once()
	repo.On("SlugExists", mock.Anything, "race-1", (*uuid.UUID)(nil)).Return(false, nil).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	blog, err := svc.CreateBlog(context.Background(), owner, model.CreateRequest{
		Title: "Race", Description: "long enough description", Status: model.StatusPublished,
	})
	require.NoError(t, err)
	assert.Equal(t, "race-1", blog.Slug)
	assert.Equal(t, model.StatusPublished, blog.Status)
}

func TestCreateBlog_PublishedRunsGuards(t *testing.T) {
	repo := new(mockRepo)
	svc := newService(repo)

	_, err := svc.CreateBlog(context.Background(), owner, model.CreateRequest{
		Title: "Hello World", Description: "<p>tiny</p><p></p>", Status: model.StatusPublished,
	})
	assert.ErrorIs(t, err, model.ErrContentTooShort)

	_, err = svc.RecoverBlog(context.Background(), owner, model.RecoverRequest{
		CreateRequest: model.CreateRequest{Title: "Hello World", Description: "<b>&nbsp;</b><i>tiny</i>", Status: model.StatusPublished},
	})
	assert.ErrorIs(t, err, model.ErrContentTooShort)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// =====================================================
// UPDATE / RECOVER
// =====================================================

func TestUpdateBlog_MissingIsNotFound(t *testing.T) {
	repo := new(mockRepo)
	svc := newService(repo)
	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, model.ErrBlogNotFound)

	_, err := svc.UpdateBlog(context.Background(), owner, id, model.UpdateRequest{Title: ptr("New title")})
	assert.Equal(t, result.KindNotFound, result.KindOf(err))
}

func TestUpdateBlog_OwnershipEnforced(t *testing.T) {
	repo := new(mockRepo)
	svc := newService(repo)
	id := uuid.New()
	other := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(&model.Blog{ID: id, AuthorID: &other}, nil)

	_, err := svc.UpdateBlog(context.Background(), owner, id, model.UpdateRequest{Title: ptr("New title")})
	assert.ErrorIs(t, err, session.ErrNotOwner)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateBlog_AdminBypassAndDefaults(t *testing.T) {
	repo := new(mockRepo)
	svc := newService(repo)
	id := uuid.New()
	other := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(&model.Blog{ID: id, AuthorID: &other}, nil)
	repo.On("Update", mock.Anything, id, mock.MatchedBy(func(p model.Patch) bool {
		return *p.Image == model.DefaultImage && *p.Category == model.DefaultCategory && p.Slug == nil
	})).Return(&model.Blog{ID: id, Image: model.DefaultImage}, nil)

	b, err := svc.UpdateBlog(context.Background(), admin, id, model.UpdateRequest{Image: ptr(""), Category: ptr(" ")})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultImage, b.Image)
}

func TestUpdateBlog_NoOpReturnsCurrent(t *testing.T) {
	repo := new(mockRepo)
	svc := newService(repo)
	id := uuid.New()
	current := &model.Blog{ID: id, AuthorID: &testAuthor.ID, Title: "Same"}
	repo.On("FindByID", mock.Anything, id).Return(current, nil)

	b, err := svc.UpdateBlog(context.Background(), owner, id, model.UpdateRequest{Slug: ptr("  ")})
	require.NoError(t, err)
	assert.Same(t, current, b)
}

func TestUpdateBlog_SlugHintExcludesOwnID(t *testing.T) {
	repo := new(mockRepo)
	svc := newService(repo)
	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(&model.Blog{ID: id, AuthorID: &testAuthor.ID}, nil)
	repo.On("SlugExists", mock.Anything, "renamed", &id).Return(false, nil)
	repo.On("Update", mock.Anything, id, mock.MatchedBy(func(p model.Patch) bool {
		return p.Slug != nil && *p.Slug == "renamed"
	})).Return(&model.Blog{ID: id, Slug: "renamed"}, nil)

	b, err := svc.UpdateBlog(context.Background(), owner, id, model.UpdateRequest{Slug: ptr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "renamed", b.Slug)
}

func TestUpdateBlog_PublishingRunsGuardsOnMergedContent(t *testing.T) {
	id := uuid.New()
	stored := func() *model.Blog {
		return &model.Blog{ID: id, AuthorID: &testAuthor.ID, Title: "Stored title", Description: "<p>x</p>", Status: model.StatusDraft}
	}

	t.Run("status alone cannot publish thin content", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newService(repo)
		repo.On("FindByID", mock.Anything, id).Return(stored(), nil)

		_, err := svc.UpdateBlog(context.Background(), owner, id, model.UpdateRequest{Status: ptr(model.StatusPublished)})
		assert.ErrorIs(t, err, model.ErrContentTooShort)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("patched body is what gets checked", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newService(repo)
		repo.On("FindByID", mock.Anything, id).Return(stored(), nil)
		repo.On("Update", mock.Anything, id, mock.Anything).Return(&model.Blog{ID: id, Status: model.StatusPublished}, nil)

		b, err := svc.UpdateBlog(context.Background(), owner, id, model.UpdateRequest{
			Description: ptr("<p>Now this body is long enough to publish.</p>"),
			Status:      ptr(model.StatusPublished),
		})
		require.NoError(t, err)
		assert.Equal(t, model.StatusPublished, b.Status)
	})

	t.Run("editing a published blog keeps it publishable", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newService(repo)
		published := stored()
		published.Description = "<p>A published body with plenty of text.</p>"
		published.Status = model.StatusPublished
		repo.On("FindByID", mock.Anything, id).Return(published, nil)

		_, err := svc.UpdateBlog(context.Background(), owner, id, model.UpdateRequest{Title: ptr("Ok")})
		assert.Equal(t, result.KindInvalidInput, result.KindOf(err))

		_, err = svc.UpdateBlog(context.Background(), owner, id, model.UpdateRequest{Description: ptr("<p>too short now</p>")})
		assert.ErrorIs(t, err, model.ErrContentTooShort)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRecoverBlog(t *testing.T) {
	t.Run("requires title and description", func(t *testing.T) {
		svc := newService(new(mockRepo))
		_, err := svc.RecoverBlog(context.Background(), owner, model.RecoverRequest{})
		assert.Equal(t, result.KindInvalidInput, result.KindOf(err))
	})

	t.Run("refuses when the target still exists", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newService(repo)
		id := uuid.New()
		repo.On("Exists", mock.Anything, id).Return(true, nil)

		_, err := svc.RecoverBlog(context.Background(), owner, model.RecoverRequest{
			CreateRequest: model.CreateRequest{Title: "Lost post", Description: "long enough description"},
			MissingID:     id.String(),
		})
		assert.ErrorIs(t, err, ErrBlogStillExists)
	})

	t.Run("recreates a vanished blog", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newService(repo)
		id := uuid.New()
		repo.On("Exists", mock.Anything, id).Return(false, nil)
		repo.On("SlugExists", mock.Anything, "lost-post", (*uuid.UUID)(nil)).Return(false, nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		b, err := svc.RecoverBlog(context.Background(), owner, model.RecoverRequest{
			CreateRequest: model.CreateRequest{Title: "Lost post", Description: "long enough description"},
			MissingID:     id.String(),
		})
		require.NoError(t, err)
		assert.NotEqual(t, id, b.ID)
		assert.Equal(t, "lost-post", b.Slug)
	})
}

// =====================================================
// LIKES
// =====================================================

func TestLikeThenUnlike_NetZero(t *testing.T) {
	repo := new(mockRepo)
	svc := newService(repo)
	repo.On("FindBySlug", mock.Anything, "post").Return(&model.Blog{Slug: "post", Likes: 5}, nil)
	repo.On("AddLikes", mock.Anything, "post", 1).Return(6, nil).Once()
	repo.On("AddLikes", mock.Anything, "post", -1).Return(5, nil).Once()

	liked, err := svc.Like(context.Background(), "post", "client-a")
	require.NoError(t, err)
	assert.Equal(t, 6, liked.Likes)
	assert.True(t, liked.Changed)

	unliked, err := svc.Unlike(context.Background(), "post", "client-a")
	require.NoError(t, err)
	assert.Equal(t, 5, unliked.Likes)
	repo.AssertExpectations(t)
}

func TestLike_IdempotentPerClient(t *testing.T) {
	repo := new(mockRepo)
	svc := newService(repo)
	repo.On("FindBySlug", mock.Anything, "post").Return(&model.Blog{Slug: "post", Likes: 6}, nil)
	repo.On("AddLikes", mock.Anything, "post", 1).Return(6, nil).Once()

	_, err := svc.Like(context.Background(), "post", "client-a")
	require.NoError(t, err)
	again, err := svc.Like(context.Background(), "post", "client-a")
	require.NoError(t, err)

	assert.False(t, again.Changed)
	assert.Equal(t, 6, again.Likes)
	repo.AssertNumberOfCalls(t, "AddLikes", 1)
}

func TestUnlike_WithoutLikeIsNoOp(t *testing.T) {
	repo := new(mockRepo)
	svc := newService(repo)
	repo.On("FindBySlug", mock.Anything, "post").Return(&model.Blog{Slug: "post", Likes: 0}, nil)

	resp, err := svc.Unlike(context.Background(), "post", "client-b")
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Likes)
	repo.AssertNotCalled(t, "AddLikes", mock.Anything, mock.Anything, mock.Anything)
}

func TestLike_FallsBackWhenTrackingUnavailable(t *testing.T) {
	repo := new(mockRepo)
	svc := NewBlogService(repo, stubAuthors{author: testAuthor}, failingCache{cache.NewMemoryCache()})
	repo.On("FindBySlug", mock.Anything, "post").Return(&model.Blog{Slug: "post", Likes: 1}, nil)
	repo.On("AddLikes", mock.Anything, "post", 1).Return(2, nil)

	resp, err := svc.Like(context.Background(), "post", "client-a")
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Likes)
}

func TestLike_StorageFailureRevertsMembership(t *testing.T) {
	repo := new(mockRepo)
	svc := newService(repo)
	repo.On("FindBySlug", mock.Anything, "post").Return(&model.Blog{Slug: "post", Likes: 1}, nil)
	repo.On("AddLikes", mock.Anything, "post", 1).Return(0, errors.New("timeout")).Once()
	repo.On("AddLikes", mock.Anything, "post", 1).Return(2, nil).Once()

	_, err := svc.Like(context.Background(), "post", "client-a")
	assert.Equal(t, result.KindInternal, result.KindOf(err))

	resp, err := svc.Like(context.Background(), "post", "client-a")
	require.NoError(t, err)
	assert.True(t, resp.Changed)
}

func TestLike_SetFollowsBlogAcrossSlugChange(t *testing.T) {
	repo := new(mockRepo)
	svc := newService(repo)
	id := uuid.New()
	repo.On("FindBySlug", mock.Anything, "old-slug").Return(&model.Blog{ID: id, Slug: "old-slug", Likes: 0}, nil)
	repo.On("FindBySlug", mock.Anything, "new-slug").Return(&model.Blog{ID: id, Slug: "new-slug", Likes: 1}, nil)
	repo.On("AddLikes", mock.Anything, "old-slug", 1).Return(1, nil).Once()

	_, err := svc.Like(context.Background(), "old-slug", "client-a")
	require.NoError(t, err)

	again, err := svc.Like(context.Background(), "new-slug", "client-a")
	require.NoError(t, err)
	assert.False(t, again.Changed)
	assert.Equal(t, 1, again.Likes)
	repo.AssertNumberOfCalls(t, "AddLikes", 1)
}

func TestLike_UnknownSlug(t *testing.T) {
	repo := new(mockRepo)
	svc := newService(repo)
	repo.On("FindBySlug", mock.Anything, "nope").Return(nil, model.ErrBlogNotFound)

	_, err := svc.Like(context.Background(), "nope", "client-a")
	assert.Equal(t, result.KindNotFound, result.KindOf(err))

	_, err = svc.Like(context.Background(), " ", "client-a")
	assert.Equal(t, result.KindInvalidInput, result.KindOf(err))
}

// =====================================================
// READS / ADMIN
// =====================================================

func TestNextOrOldest(t *testing.T) {
	repo := new(mockRepo)
	svc := newService(repo)
	current := &model.Blog{ID: uuid.New(), Slug: "current", CreatedAt: time.Now()}
	next := &model.Blog{ID: uuid.New(), Slug: "oldest"}
	repo.On("FindBySlug", mock.Anything, "current").Return(current, nil)
	repo.On("NextOrOldest", mock.Anything, current).Return(next, nil)

	b, err := svc.NextOrOldest(context.Background(), "current")
	require.NoError(t, err)
	assert.Equal(t, "oldest", b.Slug)
}

func TestAdminList_RejectsUnknownStatus(t *testing.T) {
	svc := newService(new(mockRepo))

	_, _, err := svc.AdminList(context.Background(), admin, model.AdminFilter{Status: "archived"})
	assert.Equal(t, result.KindInvalidInput, result.KindOf(err))

	_, _, err = svc.AdminList(context.Background(), owner, model.AdminFilter{})
	assert.Equal(t, result.KindForbidden, result.KindOf(err))
}

func TestDelete_AdminOnly(t *testing.T) {
	repo := new(mockRepo)
	svc := newService(repo)
	id := uuid.New()

	err := svc.Delete(context.Background(), owner, id)
	assert.Equal(t, result.KindForbidden, result.KindOf(err))

	repo.On("FindByID", mock.Anything, id).Return(&model.Blog{ID: id, Slug: "gone"}, nil)
	repo.On("Delete", mock.Anything, id).Return(nil)
	require.NoError(t, svc.Delete(context.Background(), admin, id))
}
