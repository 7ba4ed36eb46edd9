package blog

import (
	"context"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/solorad/blog-posts/server/pkg"
	"github.com/solorad/blog-posts/server/pkg/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlogPostService holds the create, list, read, update and delete
// operations over a document store. Each operation is a single store call.
type BlogPostService struct {
	store pkg.DocumentStore
	clock clock.Clock
}

// NewBlogPostService returns a service persisting to store. clk stamps
// the creation time of new posts.
func NewBlogPostService(store pkg.DocumentStore, clk clock.Clock) *BlogPostService {
	return &BlogPostService{
		store: store,
		clock: clk,
	}
}

// Create validates in and stores it as a new post.
func (s *BlogPostService) Create(ctx context.Context, in models.NewBlogPost) (*models.BlogPost, error) {
	if err := models.Validate(in.Title, in.Body); err != nil {
		return nil, err
	}
	post := &models.BlogPost{
		Title:  in.Title,
		Body:   in.Body,
		Author: in.Author,
		// BSON datetimes keep milliseconds only.
		CreatedAt: s.clock.Now().UTC().Truncate(time.Millisecond),
	}
	if _, err := s.store.Insert(ctx, post); err != nil {
		return nil, storageError("create", err)
	}
	return post, nil
}

// List returns every stored post, never nil.
func (s *BlogPostService) List(ctx context.Context) ([]*models.BlogPost, error) {
	posts, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, storageError("list", err)
	}
	if posts == nil {
		posts = []*models.BlogPost{}
	}
	return posts, nil
}

// Get returns the post with the given id.
func (s *BlogPostService) Get(ctx context.Context, id string) (*models.BlogPost, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, errors.NotFoundf("blog post %q", id)
	}
	post, err := s.store.FindByID(ctx, id)
	if IsNotFound(err) {
		return nil, err
	}
	if err != nil {
		return nil, storageError("get", err)
	}
	return post, nil
}

// Update applies patch to the post with the given id. The patch is not
// validated here; the HTTP boundary checks PUT payloads before calling.
func (s *BlogPostService) Update(ctx context.Context, id string, patch models.BlogPostPatch) (*models.BlogPost, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, errors.NotFoundf("blog post %q", id)
	}
	post, err := s.store.UpdateByID(ctx, id, patch)
	if IsNotFound(err) {
		return nil, err
	}
	if err != nil {
		return nil, storageError("update", err)
	}
	return post, nil
}

// Delete removes the post with the given id.
func (s *BlogPostService) Delete(ctx context.Context, id string) error {
	if !primitive.IsValidObjectID(id) {
		return errors.NotFoundf("blog post %q", id)
	}
	found, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		return storageError("delete", err)
	}
	if !found {
		return errors.NotFoundf("blog post %q", id)
	}
	return nil
}
