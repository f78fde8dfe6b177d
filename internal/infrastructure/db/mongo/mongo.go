// Package mongo is the document-store backend for the order ledger and the
// client registry.
package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultTimeout = 10 * time.Second

	collectionOrders  = "orders"
	collectionClients = "clients"
)

// Config holds the connection settings.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Store owns the client and hands out the ledger and registry bound to its database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	log    zerolog.Logger
}

// Open connects, pings and ensures the indexes used for insertion-order reads.
func Open(ctx context.Context, cfg Config, log zerolog.Logger) (*Store, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	s := &Store{client: client, db: client.Database(cfg.Database), log: log}
	if err := s.ensureIndexes(connectCtx); err != nil {
		log.Warn().Err(err).Msg("mongo index creation failed")
	}
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	byTime := []mongo.IndexModel{{Keys: bson.D{{Key: "created_at", Value: 1}}}}
	if _, err := s.db.Collection(collectionOrders).Indexes().CreateMany(ctx, append(byTime,
		mongo.IndexModel{Keys: bson.D{{Key: "order_id", Value: 1}}})); err != nil {
		return err
	}
	_, err := s.db.Collection(collectionClients).Indexes().CreateMany(ctx, byTime)
	return err
}

func (s *Store) Ledger() *Ledger {
	return &Ledger{col: s.db.Collection(collectionOrders), now: time.Now, log: s.log}
}

func (s *Store) Registry() *Registry {
	return &Registry{col: s.db.Collection(collectionClients), now: time.Now, log: s.log}
}

// Ping is used by the readiness probe.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
