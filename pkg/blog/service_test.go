package blog

import (
	"context"
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/juju/errors"
	"github.com/solorad/blog-posts/server/pkg/models"
	"github.com/solorad/blog-posts/server/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2024, time.March, 7, 10, 30, 15, 123456789, time.UTC)

func strPtr(s string) *string {
	return &s
}

func newTestService(t *testing.T) (*BlogPostService, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	return NewBlogPostService(store, testclock.NewClock(testNow)), store
}

func newMockService(t *testing.T) (*BlogPostService, *MockDocumentStore) {
	ctrl := gomock.NewController(t)
	store := NewMockDocumentStore(ctrl)
	return NewBlogPostService(store, testclock.NewClock(testNow)), store
}

func TestCreateThenGet(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	created, err := s.Create(ctx, models.NewBlogPost{Title: "Hello", Body: "World", Author: "ann"})
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())
	assert.Equal(t, testNow.Truncate(time.Millisecond), created.CreatedAt)

	got, err := s.Get(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreateRequiresTitleAndBody(t *testing.T) {
	testCases := []struct {
		name string
		in   models.NewBlogPost
	}{
		{name: "missing title", in: models.NewBlogPost{Body: "World"}},
		{name: "missing body", in: models.NewBlogPost{Title: "Hello", Author: "ann"}},
		{name: "missing both", in: models.NewBlogPost{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// The mock has no expectations: any store call fails the test.
			s, _ := newMockService(t)
			_, err := s.Create(context.Background(), tc.in)
			assert.True(t, IsValidation(err), "got %v", err)
		})
	}
}

func TestCreateInvalidPersistsNothing(t *testing.T) {
	ctx := context.Background()
	s, store := newTestService(t)

	_, err := s.Create(ctx, models.NewBlogPost{Title: "Hello"})
	require.Error(t, err)
	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGetAbsent(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	_, err := s.Get(ctx, primitive.NewObjectID().Hex())
	assert.True(t, IsNotFound(err), "got %v", err)
}

func TestMalformedIDNeverReachesStore(t *testing.T) {
	ctx := context.Background()
	s, _ := newMockService(t)

	for _, id := range []string{"", "42", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		_, err := s.Get(ctx, id)
		assert.True(t, IsNotFound(err), "get %q: %v", id, err)
		_, err = s.Update(ctx, id, models.BlogPostPatch{Title: strPtr("x"), Body: strPtr("y")})
		assert.True(t, IsNotFound(err), "update %q: %v", id, err)
		err = s.Delete(ctx, id)
		assert.True(t, IsNotFound(err), "delete %q: %v", id, err)
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	created, err := s.Create(ctx, models.NewBlogPost{Title: "Hello", Body: "World", Author: "ann"})
	require.NoError(t, err)

	updated, err := s.Update(ctx, created.ID.Hex(), models.BlogPostPatch{Title: strPtr("Bye"), Body: strPtr("Moon")})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Bye", updated.Title)
	assert.Equal(t, "Moon", updated.Body)
	assert.Equal(t, "ann", updated.Author)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdateDoesNotValidate(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	created, err := s.Create(ctx, models.NewBlogPost{Title: "Hello", Body: "World"})
	require.NoError(t, err)

	updated, err := s.Update(ctx, created.ID.Hex(), models.BlogPostPatch{Title: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "", updated.Title)
	assert.Equal(t, "World", updated.Body)
}

func TestUpdateAbsentLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	created, err := s.Create(ctx, models.NewBlogPost{Title: "Hello", Body: "World"})
	require.NoError(t, err)
	before, err := s.List(ctx)
	require.NoError(t, err)

	_, err = s.Update(ctx, primitive.NewObjectID().Hex(), models.BlogPostPatch{Title: strPtr("x"), Body: strPtr("y")})
	assert.True(t, IsNotFound(err), "got %v", err)

	after, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, "Hello", after[0].Title)
	assert.Equal(t, created.ID, after[0].ID)
}

func TestDeleteTwice(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	created, err := s.Create(ctx, models.NewBlogPost{Title: "Hello", Body: "World"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, created.ID.Hex()))
	err = s.Delete(ctx, created.ID.Hex())
	assert.True(t, IsNotFound(err), "got %v", err)

	_, err = s.Get(ctx, created.ID.Hex())
	assert.True(t, IsNotFound(err), "got %v", err)
}

func TestListReturnsEveryPostOnce(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	empty, err := s.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	const n = 5
	seen := make(map[primitive.ObjectID]int)
	for i := 0; i < n; i++ {
		created, err := s.Create(ctx, models.NewBlogPost{Title: "title", Body: "body"})
		require.NoError(t, err)
		seen[created.ID] = 0
	}

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, n)
	for _, post := range all {
		count, ok := seen[post.ID]
		require.True(t, ok, "unexpected post %s", post.ID.Hex())
		seen[post.ID] = count + 1
	}
	for id, count := range seen {
		assert.Equal(t, 1, count, "post %s", id.Hex())
	}
}

func TestListNilFromStore(t *testing.T) {
	s, store := newMockService(t)
	store.EXPECT().FindAll(gomock.Any()).Return(nil, nil)

	posts, err := s.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, posts)
}

func TestStorageErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection reset")
	id := primitive.NewObjectID().Hex()

	s, store := newMockService(t)
	store.EXPECT().Insert(gomock.Any(), gomock.Any()).Return("", boom)
	store.EXPECT().FindAll(gomock.Any()).Return(nil, boom)
	store.EXPECT().FindByID(gomock.Any(), id).Return(nil, boom)
	store.EXPECT().UpdateByID(gomock.Any(), id, gomock.Any()).Return(nil, boom)
	store.EXPECT().DeleteByID(gomock.Any(), id).Return(false, boom)

	_, err := s.Create(ctx, models.NewBlogPost{Title: "Hello", Body: "World"})
	assert.True(t, IsStorage(err), "create: %v", err)
	_, err = s.List(ctx)
	assert.True(t, IsStorage(err), "list: %v", err)
	_, err = s.Get(ctx, id)
	assert.True(t, IsStorage(err), "get: %v", err)
	_, err = s.Update(ctx, id, models.BlogPostPatch{})
	assert.True(t, IsStorage(err), "update: %v", err)
	err = s.Delete(ctx, id)
	assert.True(t, IsStorage(err), "delete: %v", err)

	assert.True(t, errors.Is(err, boom))
	assert.False(t, IsNotFound(err))
}

func TestStoreNotFoundPassesThrough(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID().Hex()

	s, store := newMockService(t)
	store.EXPECT().FindByID(gomock.Any(), id).Return(nil, errors.NotFoundf("blog post %q", id))
	store.EXPECT().DeleteByID(gomock.Any(), id).Return(false, nil)

	_, err := s.Get(ctx, id)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsStorage(err))

	err = s.Delete(ctx, id)
	assert.True(t, IsNotFound(err))
}
