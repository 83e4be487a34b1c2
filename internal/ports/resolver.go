package ports

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/quentinrf/plant-monitor/services/farm-service/internal/domain"
)

// Resolver is the farm status source: it answers with the last cached reading
// of a farm, its static fallback, or nothing at all. It never fails.
type Resolver struct {
	store     domain.SnapshotStore
	fallbacks map[string]domain.Reading
}

// NewResolver creates a resolver over store. Fallback keys are normalized.
func NewResolver(store domain.SnapshotStore, fallbacks map[string]domain.Reading) *Resolver {
	normalized := make(map[string]domain.Reading, len(fallbacks))
	for id, reading := range fallbacks {
		normalized[domain.NormalizeFarmID(id)] = reading
	}
	return &Resolver{
		store:     store,
		fallbacks: normalized,
	}
}

// Current returns the raw reading of a farm.
// Cache misses, unreadable entries and store failures fall back to the static
// table; unknown farms get an all-absent reading.
func (r *Resolver) Current(ctx context.Context, farmID string) domain.Reading {
	if reading, ok := r.cached(ctx, farmID); ok {
		return reading
	}
	return r.Fallback(farmID)
}

// Resolve returns the display snapshot of a farm
func (r *Resolver) Resolve(ctx context.Context, farmID string) domain.Snapshot {
	return r.Current(ctx, farmID).Snapshot()
}

// Fallback returns the static reading of a farm, ignoring the cache
func (r *Resolver) Fallback(farmID string) domain.Reading {
	return r.fallbacks[domain.NormalizeFarmID(farmID)]
}

func (r *Resolver) cached(ctx context.Context, farmID string) (domain.Reading, bool) {
	key := domain.StorageKey(farmID)

	raw, err := r.store.Get(ctx, key)
	if errors.Is(err, domain.ErrSnapshotNotFound) {
		return domain.Reading{}, false
	}
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to read cached snapshot")
		return domain.Reading{}, false
	}

	var reading domain.Reading
	if err := json.Unmarshal(raw, &reading); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("ignoring malformed cached snapshot")
		return domain.Reading{}, false
	}
	return reading, true
}
