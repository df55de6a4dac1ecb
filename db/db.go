package db

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// Store wraps the MongoDB client and database handle. It is constructed once
// in main and passed into every service; there is no package-level instance.
type Store struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// extractDBName parses the database name from the URI, defaulting to "skatehubba".
func extractDBName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "skatehubba"
	}
	if u.Path != "" && u.Path != "/" {
		return u.Path[1:]
	}
	return "skatehubba"
}

// Connect establishes a connection to MongoDB using the provided URI and
// verifies it with a ping.
func Connect(ctx context.Context, uri string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &Store{
		Client:   client,
		Database: client.Database(extractDBName(uri)),
	}, nil
}

// Collection returns a collection by name.
func (s *Store) Collection(name string) *mongo.Collection {
	return s.Database.Collection(name)
}

// WithTransaction runs fn inside a single MongoDB transaction so that every
// read and write in fn commits atomically or not at all. Concurrent writers
// to the same documents serialize; the loser re-reads committed state.
func (s *Store) WithTransaction(ctx context.Context, fn func(sc mongo.SessionContext) (interface{}, error)) (interface{}, error) {
	session, err := s.Client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	txnOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	return session.WithTransaction(ctx, fn, txnOpts)
}

// Disconnect closes the underlying client.
func (s *Store) Disconnect(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}
