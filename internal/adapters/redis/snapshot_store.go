package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/quentinrf/plant-monitor/services/farm-service/internal/domain"
)

// SnapshotStore implements domain.SnapshotStore on a Redis server
type SnapshotStore struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewSnapshotStore connects to the server at url (redis://host:port/db).
// A zero ttl keeps entries forever.
func NewSnapshotStore(ctx context.Context, url string, ttl time.Duration) (*SnapshotStore, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to reach redis: %w", err)
	}

	return &SnapshotStore{client: client, ttl: ttl}, nil
}

// Get retrieves the value stored under key
func (s *SnapshotStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	return value, nil
}

// Set stores value under key
func (s *SnapshotStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set snapshot: %w", err)
	}
	return nil
}

// Close closes the client connection pool
func (s *SnapshotStore) Close() error {
	return s.client.Close()
}

var _ domain.SnapshotStore = (*SnapshotStore)(nil)
