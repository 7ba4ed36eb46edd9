package main

import (
	"context"
	"time"

	"github.com/juju/errors"
	"github.com/solorad/blog-posts/server/pkg"
	"github.com/solorad/blog-posts/server/pkg/config"
	"github.com/solorad/blog-posts/server/pkg/log"
	"github.com/solorad/blog-posts/server/pkg/storage"
)

// openStore connects the document store selected by cfg.
func openStore(ctx context.Context, cfg config.Config) (pkg.DocumentStore, error) {
	switch cfg.Store {
	case config.StoreMongo:
		client, err := storage.NewMongoClient(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		store, err := storage.NewBlogStore(ctx, client, cfg.Mongo)
		if err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return store, nil
	case config.StoreBolt:
		store, err := storage.OpenBoltStore(cfg.Bolt.Path)
		if err != nil {
			return nil, err
		}
		log.Infof("Opened bolt store at %s", cfg.Bolt.Path)
		return store, nil
	case config.StoreMemory:
		log.Warningf("Using the in-memory store, posts will not survive a restart")
		return storage.NewMemoryStore(), nil
	}
	return nil, errors.NotValidf("store %q", cfg.Store)
}

func closeStore(store pkg.DocumentStore) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Close(ctx); err != nil {
		log.Errorf("Error closing store: %v", err)
	}
}
