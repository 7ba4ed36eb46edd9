package pkg

import (
	"context"

	"github.com/solorad/blog-posts/server/pkg/models"
)

// DocumentStore interface for persistence of blog posts.
type DocumentStore interface {
	// Insert stores post, assigning its ID when it is zero, and returns
	// the id as a hex string.
	Insert(ctx context.Context, post *models.BlogPost) (string, error)

	// FindAll returns every post in insertion order. Order follows the
	// ObjectID bytes: timestamp seconds first, so posts created within the
	// same second by different processes are ordered by the random part of
	// their ids, not by write time.
	FindAll(ctx context.Context) ([]*models.BlogPost, error)

	// FindByID should return an errors.NotFound error if no post has the
	// given id, including when id is not a valid ObjectID.
	FindByID(ctx context.Context, id string) (*models.BlogPost, error)

	// UpdateByID applies patch and returns the post as stored afterwards.
	// It should return an errors.NotFound error like FindByID.
	UpdateByID(ctx context.Context, id string, patch models.BlogPostPatch) (*models.BlogPost, error)

	// DeleteByID reports whether a post was removed.
	DeleteByID(ctx context.Context, id string) (bool, error)

	Close(ctx context.Context) error
}

// BulkInserter is implemented by stores that can write many posts at once.
type BulkInserter interface {
	// InsertMany reports how many posts were stored, also on error: a
	// store that writes in independent chunks may have committed some.
	InsertMany(ctx context.Context, posts []*models.BlogPost) (int, error)
}
