package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/juju/errors"
)

const (
	DefaultGRPCEndpoint = "0.0.0.0:50051"
	DefaultHTTPAddr     = ":3000"

	DefaultMongoURI            = "mongodb://localhost:27017"
	DefaultMongoDatabase       = "my-blog-db"
	DefaultMongoCollection     = "blogposts"
	DefaultMongoConnectTimeout = 10 * time.Second
	DefaultMongoOpTimeout      = 5 * time.Second

	DefaultBoltPath = "blog.db"
)

// Store backends understood by the server.
const (
	StoreMongo  = "mongo"
	StoreBolt   = "bolt"
	StoreMemory = "memory"
)

// Duration is a time.Duration read from a TOML string such as "5s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MongoConfig configures the MongoDB document store.
type MongoConfig struct {
	URI            string   `toml:"uri"`
	Database       string   `toml:"database"`
	Collection     string   `toml:"collection"`
	ConnectTimeout Duration `toml:"connect_timeout"`
	OpTimeout      Duration `toml:"op_timeout"`
}

// BoltConfig configures the embedded bolt document store.
type BoltConfig struct {
	Path string `toml:"path"`
}

// Config defines runtime configuration for the blog server.
type Config struct {
	GRPCEndpoint string      `toml:"grpc_endpoint"`
	HTTPAddr     string      `toml:"http_addr"`
	Store        string      `toml:"store"`
	Mongo        MongoConfig `toml:"mongo"`
	Bolt         BoltConfig  `toml:"bolt"`
}

// Default returns default configuration values.
func Default() Config {
	return Config{
		GRPCEndpoint: DefaultGRPCEndpoint,
		HTTPAddr:     DefaultHTTPAddr,
		Store:        StoreMongo,
		Mongo: MongoConfig{
			URI:            DefaultMongoURI,
			Database:       DefaultMongoDatabase,
			Collection:     DefaultMongoCollection,
			ConnectTimeout: Duration{DefaultMongoConnectTimeout},
			OpTimeout:      Duration{DefaultMongoOpTimeout},
		},
		Bolt: BoltConfig{
			Path: DefaultBoltPath,
		},
	}
}

// Load returns the defaults overlaid with the TOML file at path. An empty
// path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return cfg, errors.Annotatef(err, "reading config %s", path)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Annotatef(err, "failed to parse config %s", path)
	}
	return cfg, nil
}

// Validate reports the first setting the server cannot run with.
func (c Config) Validate() error {
	if c.GRPCEndpoint == "" {
		return errors.NotValidf("empty grpc_endpoint")
	}
	if c.HTTPAddr == "" {
		return errors.NotValidf("empty http_addr")
	}
	switch c.Store {
	case StoreMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" || c.Mongo.Collection == "" {
			return errors.NotValidf("mongo store without uri, database or collection")
		}
		if c.Mongo.OpTimeout.Duration <= 0 {
			return errors.NotValidf("mongo op_timeout %v", c.Mongo.OpTimeout.Duration)
		}
	case StoreBolt:
		if c.Bolt.Path == "" {
			return errors.NotValidf("bolt store without path")
		}
	case StoreMemory:
	default:
		return errors.NotValidf("store %q", c.Store)
	}
	return nil
}
