package domain

import (
	"context"
)

// SnapshotStore is the key-value cache holding the last known reading per farm.
// Keys come from StorageKey, values are JSON-encoded Readings.
// This is a PORT - adapters (Memory, SQLite, Redis) will implement it
type SnapshotStore interface {
	// Get returns the raw value stored under key, or ErrSnapshotNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key string, value []byte) error
}
