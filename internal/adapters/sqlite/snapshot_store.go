package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/quentinrf/plant-monitor/services/farm-service/internal/domain"
)

const (
	getQuery = `SELECT value FROM farm_status WHERE key = ?`
	setQuery = `INSERT INTO farm_status (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
)

// SnapshotStore implements domain.SnapshotStore with SQLite
type SnapshotStore struct {
	db *sql.DB
}

// NewSnapshotStore opens (or creates) the database at dbPath
func NewSnapshotStore(dbPath string) (*SnapshotStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Create table if not exists
	schema := `
	CREATE TABLE IF NOT EXISTS farm_status (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SnapshotStore{db: db}, nil
}

// NewSnapshotStoreFromDB wraps an already migrated database handle
func NewSnapshotStoreFromDB(db *sql.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// Get retrieves the value stored under key
func (s *SnapshotStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value string

	err := s.db.QueryRowContext(ctx, getQuery, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}

	return []byte(value), nil
}

// Set upserts the value stored under key
func (s *SnapshotStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, setQuery, key, string(value), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}

var _ domain.SnapshotStore = (*SnapshotStore)(nil)
