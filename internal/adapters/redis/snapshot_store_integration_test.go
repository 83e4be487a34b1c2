//go:build integration

package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/quentinrf/plant-monitor/services/farm-service/internal/domain"
)

func newTestStore(t *testing.T) *SnapshotStore {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Fatalf("failed to start redis container: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate redis container: %v", err)
		}
	})

	url, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	store, err := NewSnapshotStore(ctx, url, 0)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSnapshotStore_Redis(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "farmStatus_FARM1")
	if !errors.Is(err, domain.ErrSnapshotNotFound) {
		t.Fatalf("expected ErrSnapshotNotFound before first write, got %v", err)
	}

	if err := store.Set(ctx, "farmStatus_FARM1", []byte(`{"temperature":30,"humidity":50,"sunlight":120}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := store.Get(ctx, "farmStatus_FARM1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `{"temperature":30,"humidity":50,"sunlight":120}` {
		t.Errorf("unexpected value %s", got)
	}
}
