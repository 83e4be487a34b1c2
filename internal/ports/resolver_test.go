package ports

import (
	"context"
	"testing"

	"github.com/quentinrf/plant-monitor/services/farm-service/internal/adapters/memory"
	"github.com/quentinrf/plant-monitor/services/farm-service/internal/domain"
)

func TestResolver_Resolve(t *testing.T) {
	tests := []struct {
		name   string
		cached map[string]string
		farmID string
		want   domain.Snapshot
	}{
		{
			name:   "cached numeric reading",
			cached: map[string]string{"farmStatus_FARM1": `{"temperature":30,"humidity":50,"sunlight":120}`},
			farmID: "FARM1",
			want:   domain.Snapshot{Temperature: "30°C", Humidity: "50%", Sunlight: "120 lux"},
		},
		{
			name:   "lookup is case-insensitive",
			cached: map[string]string{"farmStatus_FARM1": `{"temperature":30,"humidity":50,"sunlight":120}`},
			farmID: "farm1",
			want:   domain.Snapshot{Temperature: "30°C", Humidity: "50%", Sunlight: "120 lux"},
		},
		{
			name:   "fallback when nothing is cached",
			farmID: "FARM2",
			want:   domain.Snapshot{Temperature: "24°C", Humidity: "72%", Sunlight: "60 lux"},
		},
		{
			name:   "unknown farm",
			farmID: "FARM42",
			want:   domain.UnavailableSnapshot(),
		},
		{
			name:   "malformed cache entry falls back",
			cached: map[string]string{"farmStatus_FARM3": `{not json`},
			farmID: "FARM3",
			want:   domain.Snapshot{Temperature: "29°C", Humidity: "58%", Sunlight: "95 lux"},
		},
		{
			name:   "missing sunlight",
			cached: map[string]string{"farmStatus_FARM1": `{"temperature":30,"humidity":50}`},
			farmID: "FARM1",
			want:   domain.Snapshot{Temperature: "30°C", Humidity: "50%", Sunlight: "N/A"},
		},
		{
			name:   "digit string and free text sunlight",
			cached: map[string]string{"farmStatus_FARM1": `{"temperature":"30","humidity":50,"sunlight":"overcast"}`},
			farmID: "FARM1",
			want:   domain.Snapshot{Temperature: "30°C", Humidity: "50%", Sunlight: "overcast"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := memory.NewSnapshotStore()
			for k, v := range tt.cached {
				if err := store.Set(ctx, k, []byte(v)); err != nil {
					t.Fatalf("seed cache: %v", err)
				}
			}

			resolver := NewResolver(store, domain.DefaultFallbacks())
			if got := resolver.Resolve(ctx, tt.farmID); got != tt.want {
				t.Errorf("Resolve(%q) = %+v, want %+v", tt.farmID, got, tt.want)
			}
		})
	}
}

func TestResolver_StoreFailureFallsBack(t *testing.T) {
	resolver := NewResolver(failingStore{}, domain.DefaultFallbacks())

	want := domain.Snapshot{Temperature: "27°C", Humidity: "65%", Sunlight: "90 lux"}
	if got := resolver.Resolve(context.Background(), "FARM1"); got != want {
		t.Errorf("Resolve() = %+v, want %+v", got, want)
	}
}

func TestResolver_NormalizesFallbackKeys(t *testing.T) {
	resolver := NewResolver(memory.NewSnapshotStore(), map[string]domain.Reading{
		"greenhouse-a": domain.NewReading(20, 40, 300),
	})

	got := resolver.Resolve(context.Background(), "GREENHOUSE-A")
	if got.Sunlight != "300 lux" {
		t.Errorf("sunlight = %q, want 300 lux", got.Sunlight)
	}
}
