package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/hockeytracker/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Client exposes the connection so the event stream publisher can share it
func (s *Storage) Client() *redis.Client {
	return s.client
}

// Config returns the settings the storage was created with
func (s *Storage) Config() Config {
	return s.cfg
}

// Ping round-trips to the server
func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

func (s *Storage) Load(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, StateKey(s.cfg.KeyPrefix)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}
	return data, nil
}

func (s *Storage) Save(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, StateKey(s.cfg.KeyPrefix), data, 0).Err(); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}

// StateKey returns the Redis key for the state blob
func StateKey(prefix string) string {
	if prefix == "" {
		return storage.StateKey
	}
	return fmt.Sprintf("%s:%s", prefix, storage.StateKey)
}
