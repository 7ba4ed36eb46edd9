package storage

import (
	"context"
	"sync"

	"github.com/juju/errors"
	"github.com/solorad/blog-posts/server/pkg/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an implementation of pkg.DocumentStore backed by a map.
// Stored posts are copied in and out so callers never share them.
type MemoryStore struct {
	sync.Mutex
	posts map[primitive.ObjectID]*models.BlogPost
	order []primitive.ObjectID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		posts: make(map[primitive.ObjectID]*models.BlogPost),
	}
}

func clonePost(post *models.BlogPost) *models.BlogPost {
	c := *post
	return &c
}

func (s *MemoryStore) Insert(_ context.Context, post *models.BlogPost) (string, error) {
	s.Lock()
	defer s.Unlock()
	s.insert(post)
	return post.ID.Hex(), nil
}

func (s *MemoryStore) insert(post *models.BlogPost) {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	if _, ok := s.posts[post.ID]; !ok {
		s.order = append(s.order, post.ID)
	}
	s.posts[post.ID] = clonePost(post)
}

func (s *MemoryStore) InsertMany(_ context.Context, posts []*models.BlogPost) (int, error) {
	s.Lock()
	defer s.Unlock()
	for _, post := range posts {
		s.insert(post)
	}
	return len(posts), nil
}

func (s *MemoryStore) FindAll(_ context.Context) ([]*models.BlogPost, error) {
	s.Lock()
	defer s.Unlock()
	posts := make([]*models.BlogPost, 0, len(s.order))
	for _, id := range s.order {
		posts = append(posts, clonePost(s.posts[id]))
	}
	return posts, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id string) (*models.BlogPost, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	s.Lock()
	defer s.Unlock()
	post, ok := s.posts[oid]
	if !ok {
		return nil, errors.NotFoundf("blog post %q", id)
	}
	return clonePost(post), nil
}

func (s *MemoryStore) UpdateByID(_ context.Context, id string, patch models.BlogPostPatch) (*models.BlogPost, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	s.Lock()
	defer s.Unlock()
	post, ok := s.posts[oid]
	if !ok {
		return nil, errors.NotFoundf("blog post %q", id)
	}
	patch.Apply(post)
	return clonePost(post), nil
}

func (s *MemoryStore) DeleteByID(_ context.Context, id string) (bool, error) {
	oid, err := parseID(id)
	if err != nil {
		return false, nil
	}
	s.Lock()
	defer s.Unlock()
	if _, ok := s.posts[oid]; !ok {
		return false, nil
	}
	delete(s.posts, oid)
	for i, other := range s.order {
		if other == oid {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (s *MemoryStore) Close(_ context.Context) error {
	return nil
}
