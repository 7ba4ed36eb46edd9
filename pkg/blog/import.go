package blog

import (
	"context"
	"io"
	"time"

	"github.com/juju/errors"
	"github.com/solorad/blog-posts/server/pkg"
	"github.com/solorad/blog-posts/server/pkg/log"
	"github.com/solorad/blog-posts/server/pkg/models"
	"gopkg.in/yaml.v3"
)

// DecodeImport reads a YAML (or JSON) sequence of posts. An empty input
// yields no posts.
func DecodeImport(r io.Reader) ([]models.NewBlogPost, error) {
	var posts []models.NewBlogPost
	if err := yaml.NewDecoder(r).Decode(&posts); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.Annotate(err, "decoding blog posts")
	}
	return posts, nil
}

// Import validates every post in the batch before storing any of them and
// returns how many were stored, also when storing fails part way. Stores
// implementing pkg.BulkInserter receive the whole batch in one call.
func (s *BlogPostService) Import(ctx context.Context, in []models.NewBlogPost) (int, error) {
	start := time.Now()
	defer log.TimeTrack(start, "Import")

	now := s.clock.Now().UTC().Truncate(time.Millisecond)
	posts := make([]*models.BlogPost, 0, len(in))
	for i, p := range in {
		if err := models.Validate(p.Title, p.Body); err != nil {
			return 0, errors.Annotatef(err, "post %d", i)
		}
		posts = append(posts, &models.BlogPost{
			Title:     p.Title,
			Body:      p.Body,
			Author:    p.Author,
			CreatedAt: now,
		})
	}
	if len(posts) == 0 {
		return 0, nil
	}

	if bulk, ok := s.store.(pkg.BulkInserter); ok {
		n, err := bulk.InsertMany(ctx, posts)
		if err != nil {
			return n, storageError("import", err)
		}
		return n, nil
	}
	for i, post := range posts {
		if _, err := s.store.Insert(ctx, post); err != nil {
			return i, storageError("import", err)
		}
	}
	return len(posts), nil
}
