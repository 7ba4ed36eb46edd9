package storage

import (
	"time"

	"github.com/juju/errors"
	"github.com/solorad/blog-posts/server/pkg/config"
	"github.com/solorad/blog-posts/server/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/net/context"
)

// BlogStore is an implementation of pkg.DocumentStore over a MongoDB
// collection.
type BlogStore struct {
	client     *MongoClient
	collection *mongo.Collection
	opTimeout  time.Duration
}

// NewBlogStore binds the configured collection and ensures its indexes.
func NewBlogStore(ctx context.Context, client *MongoClient, cfg config.MongoConfig) (*BlogStore, error) {
	s := &BlogStore{
		client:     client,
		collection: client.GetCollection(cfg.Database, cfg.Collection),
		opTimeout:  cfg.OpTimeout.Duration,
	}
	if s.opTimeout <= 0 {
		s.opTimeout = config.DefaultMongoOpTimeout
	}
	err := client.CreateIndex(ctx, s.collection, bson.D{{Key: "created_at", Value: 1}}, "created_at",
		options.Index().SetName("created_at"))
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *BlogStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opTimeout)
}

// Insert stores post, generating its ObjectID when missing.
func (s *BlogStore) Insert(ctx context.Context, post *models.BlogPost) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	if _, err := s.collection.InsertOne(ctx, post); err != nil {
		return "", errors.Annotate(err, "inserting blog post")
	}
	return post.ID.Hex(), nil
}

// InsertMany writes posts through the bulk write worker pool. On failure
// the count covers the chunks that were committed anyway.
func (s *BlogStore) InsertMany(ctx context.Context, posts []*models.BlogPost) (int, error) {
	writeModels := make([]mongo.WriteModel, 0, len(posts))
	for _, post := range posts {
		if post.ID.IsZero() {
			post.ID = primitive.NewObjectID()
		}
		writeModels = append(writeModels, mongo.NewInsertOneModel().SetDocument(post))
	}
	n, err := s.client.BulkWrite(ctx, writeModels, s.collection)
	return int(n), err
}

// FindAll returns all posts ordered by id, which follows insertion order
// to the second (see pkg.DocumentStore).
func (s *BlogStore) FindAll(ctx context.Context) ([]*models.BlogPost, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	cur, err := s.collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errors.Annotate(err, "listing blog posts")
	}
	posts := make([]*models.BlogPost, 0)
	if err := cur.All(ctx, &posts); err != nil {
		return nil, errors.Annotate(err, "decoding blog posts")
	}
	return posts, nil
}

// FindByID returns the post with the given hex id.
func (s *BlogStore) FindByID(ctx context.Context, id string) (*models.BlogPost, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	var post models.BlogPost
	err = s.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, errors.NotFoundf("blog post %q", id)
	}
	if err != nil {
		return nil, errors.Annotatef(err, "finding blog post %q", id)
	}
	return &post, nil
}

// UpdateByID sets the patched fields and returns the document after update.
func (s *BlogStore) UpdateByID(ctx context.Context, id string, patch models.BlogPostPatch) (*models.BlogPost, error) {
	if patch.Empty() {
		return s.FindByID(ctx, id)
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	var post models.BlogPost
	err = s.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M(patch.Fields())},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, errors.NotFoundf("blog post %q", id)
	}
	if err != nil {
		return nil, errors.Annotatef(err, "updating blog post %q", id)
	}
	return &post, nil
}

// DeleteByID removes the post with the given hex id.
func (s *BlogStore) DeleteByID(ctx context.Context, id string) (bool, error) {
	oid, err := parseID(id)
	if err != nil {
		return false, nil
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, errors.Annotatef(err, "deleting blog post %q", id)
	}
	return res.DeletedCount > 0, nil
}

// Close disconnects from MongoDB.
func (s *BlogStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
