package storage

import (
	"time"

	"github.com/juju/errors"
	"github.com/solorad/blog-posts/server/pkg/config"
	"github.com/solorad/blog-posts/server/pkg/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
	"golang.org/x/net/context"
)

const (
	bulkSize    = 500
	bulkWorkers = 4
)

// MongoClient wraps the driver client with the helpers the stores need.
type MongoClient struct {
	Client *mongo.Client
}

// NewMongoClient init connection with MongoDb and checks the primary answers.
func NewMongoClient(ctx context.Context, cfg config.MongoConfig) (*MongoClient, error) {
	timeout := cfg.ConnectTimeout.Duration
	if timeout <= 0 {
		timeout = config.DefaultMongoConnectTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	writeOptions := writeconcern.New(
		writeconcern.W(1),
		writeconcern.J(true),
	)
	opts := options.Client().SetWriteConcern(writeOptions).ApplyURI(cfg.URI)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Errorf("Error occurred during mongoDb init %v", err)
		return nil, errors.Annotate(err, "connecting to mongodb")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Errorf("Error occurred during mongoDb ping %v", err)
		_ = client.Disconnect(context.Background())
		return nil, errors.Annotate(err, "pinging mongodb")
	}
	log.Infof("Connected to MongoDB, database %q", cfg.Database)
	return &MongoClient{
		Client: client,
	}, nil
}

// GetCollection create collection if not present and returns it
func (m *MongoClient) GetCollection(dbName, collectionName string) *mongo.Collection {
	return m.Client.Database(dbName).Collection(collectionName)
}

// CreateIndex adds the index if it is not present in MongoDb
func (m *MongoClient) CreateIndex(ctx context.Context, collection *mongo.Collection, keys interface{}, indexName string, opts *options.IndexOptions) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    keys,
		Options: opts,
	})
	if err != nil {
		log.Errorf("Error occurred on %v index creation: %v", indexName, err)
		return errors.Annotatef(err, "creating index %s", indexName)
	}
	log.Infof("Ensure in index for %v", indexName)
	return nil
}

// BulkWrite writes models in chunks of bulkSize spread over a small pool of
// workers. It returns the number of documents inserted across all chunks and
// the first chunk error, if any. Chunks are not atomic as a whole: a failed
// call may still have written other chunks, which the count includes.
func (m *MongoClient) BulkWrite(ctx context.Context, writeModels []mongo.WriteModel, collection *mongo.Collection) (int64, error) {
	start := time.Now()
	defer func() {
		log.TimeTrack(start, "BulkWrite to "+collection.Name())
	}()
	batches := splitBatches(writeModels, bulkSize)
	jobs := make(chan []mongo.WriteModel, len(batches))
	results := make(chan bulkResult, len(batches))
	for i := 0; i < bulkWorkers; i++ {
		go startBulkWorker(ctx, jobs, results, collection)
	}
	for _, batch := range batches {
		jobs <- batch
	}
	close(jobs)
	return collectBulkResults(results, len(batches))
}

// Disconnect closes the connection pool.
func (m *MongoClient) Disconnect(ctx context.Context) error {
	return errors.Trace(m.Client.Disconnect(ctx))
}

func splitBatches(writeModels []mongo.WriteModel, size int) [][]mongo.WriteModel {
	var batches [][]mongo.WriteModel
	for from := 0; from < len(writeModels); from += size {
		to := from + size
		if to > len(writeModels) {
			to = len(writeModels)
		}
		batches = append(batches, writeModels[from:to])
	}
	return batches
}

type bulkResult struct {
	inserted int64
	err      error
}

// collectBulkResults sums the inserted counts of n chunk results and keeps
// the first error.
func collectBulkResults(results <-chan bulkResult, n int) (int64, error) {
	var (
		inserted int64
		firstErr error
	)
	for i := 0; i < n; i++ {
		res := <-results
		inserted += res.inserted
		if res.err != nil && firstErr == nil {
			firstErr = res.err
		}
	}
	return inserted, firstErr
}

func startBulkWorker(ctx context.Context, jobs chan []mongo.WriteModel, results chan bulkResult, collection *mongo.Collection) {
	for job := range jobs {
		results <- writeBulk(ctx, collection, job)
	}
}

func writeBulk(ctx context.Context, collection *mongo.Collection, writeModels []mongo.WriteModel) bulkResult {
	ctx, cancel := context.WithTimeout(ctx, 1*time.Minute)
	defer cancel()
	result, err := collection.BulkWrite(ctx, writeModels)
	var res bulkResult
	if result != nil {
		res.inserted = result.InsertedCount
	}
	if err != nil {
		log.Errorf("error occurred on bulk write in %s: %v", collection.Name(), err)
		res.err = errors.Annotatef(err, "bulk write to %s", collection.Name())
	}
	return res
}
