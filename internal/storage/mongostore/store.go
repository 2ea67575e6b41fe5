// Package mongostore implements the record store on MongoDB.
//
// Collection names and field names follow the documents written by the
// original admin panel so an existing database can be served as-is.
package mongostore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/mcoot/blogadmin/internal/storage"
)

// Collection names
const (
	ColAdmins     = "admins"
	ColUsers      = "users"
	ColCategories = "categories"
	ColBlogs      = "blogs"
)

// Config holds MongoDB connection settings
type Config struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// DefaultConfig returns the local development database
func DefaultConfig() Config {
	return Config{
		URI:            "mongodb://127.0.0.1:27017",
		Database:       "blog-admin-db",
		ConnectTimeout: 10 * time.Second,
	}
}

// Store is the MongoDB record store
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ storage.Storage = (*Store)(nil)

// NewStore connects, pings and ensures indexes. Index failures are logged,
// not fatal.
func NewStore(cfg Config, logger *slog.Logger) (*Store, error) {
	timeout := cfg.ConnectTimeout
	if timeout == 0 {
		timeout = DefaultConfig().ConnectTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongostore: connect failed: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongostore: ping failed: %w", err)
	}

	s := &Store{client: client, db: client.Database(cfg.Database)}

	if err := s.ensureIndexes(ctx); err != nil {
		logger.Warn("mongostore: ensure indexes failed", slog.String("error", err.Error()))
	}

	return s, nil
}

// Close disconnects from MongoDB
func (s *Store) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) col(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	type idx struct {
		col    string
		keys   bson.D
		unique bool
	}

	indexes := []idx{
		{ColAdmins, bson.D{{Key: "email", Value: 1}}, true},
		{ColUsers, bson.D{{Key: "email", Value: 1}}, true},
		{ColBlogs, bson.D{{Key: "status", Value: 1}, {Key: "publishDate", Value: 1}}, false},
		{ColBlogs, bson.D{{Key: "category", Value: 1}}, false},
		{ColBlogs, bson.D{{Key: "createdAt", Value: -1}}, false},
	}

	for _, i := range indexes {
		model := mongo.IndexModel{Keys: i.keys}
		if i.unique {
			model.Options = options.Index().SetUnique(true)
		}
		if _, err := s.col(i.col).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", i.col, err)
		}
	}

	return nil
}
