package db

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/yigit/studentreg/internal/config"
	"github.com/yigit/studentreg/internal/pkg/apperrors"
)

const defaultConnectTimeout = 10 * time.Second

// Store owns the MongoDB client for one database. It starts disconnected;
// every accessor fails with apperrors.ErrNotConnected until Connect succeeds.
type Store struct {
	cfg    config.DatabaseConfig
	logger zerolog.Logger

	mu     sync.RWMutex
	client *mongo.Client
	db     *mongo.Database
}

// NewStore creates a disconnected store for the configured database
func NewStore(cfg config.DatabaseConfig, lgr zerolog.Logger) *Store {
	return &Store{
		cfg:    cfg,
		logger: lgr.With().Str("component", "mongo").Str("database", cfg.Name).Logger(),
	}
}

// Connect opens the client if it is not open yet and returns the database
// handle. Concurrent callers share a single client.
func (s *Store) Connect(ctx context.Context) (*mongo.Database, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db, nil
	}

	timeout := s.cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(s.cfg.URI).
		SetServerSelectionTimeout(timeout).
		SetConnectTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, apperrors.NewDatabaseError("connect", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, apperrors.NewDatabaseError("ping", err)
	}

	s.client = client
	s.db = client.Database(s.cfg.Name)
	s.logger.Info().Msg("Connected to MongoDB")
	return s.db, nil
}

// Database returns the connected database handle
func (s *Store) Database() (*mongo.Database, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, apperrors.ErrNotConnected
	}
	return s.db, nil
}

// Collection returns a handle to the named collection
func (s *Store) Collection(name string) (*mongo.Collection, error) {
	database, err := s.Database()
	if err != nil {
		return nil, err
	}
	return database.Collection(name), nil
}

// IsConnected reports whether Connect has succeeded and Close has not run since.
func (s *Store) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db != nil
}

// Ping round-trips to the primary.
func (s *Store) Ping(ctx context.Context) error {
	s.mu.RLock()
	client := s.client
	s.mu.RUnlock()

	if client == nil {
		return apperrors.ErrNotConnected
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return apperrors.NewDatabaseError("ping", err)
	}
	return nil
}

// Close disconnects and resets the store. Closing a store that is not
// connected is a no-op.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		return nil
	}

	err := s.client.Disconnect(ctx)
	s.client = nil
	s.db = nil
	if err != nil {
		return apperrors.NewDatabaseError("disconnect", err)
	}
	s.logger.Info().Msg("MongoDB connection closed")
	return nil
}

// WithStore connects a new store, runs fn, and closes the store on every
// exit path.
func WithStore(ctx context.Context, cfg config.DatabaseConfig, lgr zerolog.Logger, fn func(*Store) error) (err error) {
	store := NewStore(cfg, lgr)
	if _, err := store.Connect(ctx); err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(context.WithoutCancel(ctx)); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(store)
}
