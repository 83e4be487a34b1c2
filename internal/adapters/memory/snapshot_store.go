package memory

import (
	"context"
	"sync"

	"github.com/quentinrf/plant-monitor/services/farm-service/internal/domain"
)

// SnapshotStore implements domain.SnapshotStore with in-memory storage
// Nothing survives a restart - use sqlite or redis for that
type SnapshotStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewSnapshotStore creates an empty in-memory store
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		entries: make(map[string][]byte),
	}
}

// Get returns a copy of the value stored under key
func (s *SnapshotStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, exists := s.entries[key]
	if !exists {
		return nil, domain.ErrSnapshotNotFound
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set stores a copy of value under key
func (s *SnapshotStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.entries[key] = stored
	return nil
}

var _ domain.SnapshotStore = (*SnapshotStore)(nil)
