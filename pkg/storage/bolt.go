package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/boltdb/bolt"
	"github.com/juju/errors"
	"github.com/solorad/blog-posts/server/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BoltStore is an implementation of pkg.DocumentStore whose backend is a
// Bolt database. Posts are kept as BSON documents keyed by their ObjectID
// bytes, so key order follows creation order to the second.
type BoltStore bolt.DB

var (
	bucketName = []byte("blogposts")
)

// OpenBoltStore opens (creating if needed) the bolt file at path.
func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Annotatef(err, "opening bolt database %s", path)
	}
	s, err := NewBoltStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewBoltStore ensures the posts bucket exists in db.
func NewBoltStore(db *bolt.DB) (*BoltStore, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		if err != nil {
			return fmt.Errorf("could not ensure bucket %q exists: %w", bucketName, err)
		}
		return nil
	})
	return (*BoltStore)(db), err
}

func (s *BoltStore) db() *bolt.DB {
	return (*bolt.DB)(s)
}

func putPost(b *bolt.Bucket, post *models.BlogPost) error {
	data, err := bson.Marshal(post)
	if err != nil {
		return errors.Annotatef(err, "encoding blog post %s", post.ID.Hex())
	}
	if err := b.Put(post.ID[:], data); err != nil {
		return fmt.Errorf("could not put blog post %s: %w", post.ID.Hex(), err)
	}
	return nil
}

func decodePost(data []byte) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := bson.Unmarshal(data, &post); err != nil {
		return nil, errors.Annotate(err, "decoding blog post")
	}
	return &post, nil
}

func (s *BoltStore) Insert(_ context.Context, post *models.BlogPost) (string, error) {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	err := s.db().Update(func(tx *bolt.Tx) error {
		return putPost(tx.Bucket(bucketName), post)
	})
	if err != nil {
		return "", err
	}
	return post.ID.Hex(), nil
}

// InsertMany writes all posts in a single transaction.
func (s *BoltStore) InsertMany(_ context.Context, posts []*models.BlogPost) (int, error) {
	err := s.db().Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		for _, post := range posts {
			if post.ID.IsZero() {
				post.ID = primitive.NewObjectID()
			}
			if err := putPost(b, post); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(posts), nil
}

func (s *BoltStore) FindAll(_ context.Context) ([]*models.BlogPost, error) {
	posts := make([]*models.BlogPost, 0)
	err := s.db().View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).ForEach(func(_, v []byte) error {
			post, err := decodePost(v)
			if err != nil {
				return err
			}
			posts = append(posts, post)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *BoltStore) FindByID(_ context.Context, id string) (post *models.BlogPost, err error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	err = s.db().View(func(tx *bolt.Tx) error {
		value := tx.Bucket(bucketName).Get(oid[:])
		if value == nil {
			return errors.NotFoundf("blog post %q", id)
		}
		post, err = decodePost(value)
		return err
	})
	return post, err
}

func (s *BoltStore) UpdateByID(_ context.Context, id string, patch models.BlogPostPatch) (post *models.BlogPost, err error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	err = s.db().Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		value := b.Get(oid[:])
		if value == nil {
			return errors.NotFoundf("blog post %q", id)
		}
		if post, err = decodePost(value); err != nil {
			return err
		}
		patch.Apply(post)
		return putPost(b, post)
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (s *BoltStore) DeleteByID(_ context.Context, id string) (found bool, err error) {
	oid, err := parseID(id)
	if err != nil {
		return false, nil
	}
	err = s.db().Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b.Get(oid[:]) == nil {
			return nil
		}
		found = true
		return b.Delete(oid[:])
	})
	return found, err
}

func (s *BoltStore) Close(_ context.Context) error {
	return s.db().Close()
}
