package mock

import (
	"context"
	"math/rand"
	"sync"

	"github.com/quentinrf/plant-monitor/services/farm-service/internal/domain"
)

// FakeFetcher simulates the live farm endpoint for development
// This implements the ports.SnapshotFetcher interface
type FakeFetcher struct {
	mu        sync.Mutex
	rng       *rand.Rand
	base      domain.Reading
	variation float64
}

// NewFakeFetcher creates a fetcher that returns readings around base
// variation: +/- fraction of each base value (e.g., 0.1 means 90%-110%)
func NewFakeFetcher(temperature, humidity, sunlight, variation float64, seed int64) *FakeFetcher {
	return &FakeFetcher{
		rng:       rand.New(rand.NewSource(seed)),
		base:      domain.NewReading(temperature, humidity, sunlight),
		variation: variation,
	}
}

// Fetch returns a simulated reading rounded to whole units like the real device
func (f *FakeFetcher) Fetch(ctx context.Context) (domain.Reading, error) {
	if err := ctx.Err(); err != nil {
		return domain.Reading{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	return domain.Reading{
		Temperature: domain.Number(f.jitter(f.base.Temperature)),
		Humidity:    domain.Number(f.jitter(f.base.Humidity)),
		Sunlight:    domain.Number(f.jitter(f.base.Sunlight)),
	}, nil
}

func (f *FakeFetcher) jitter(v domain.Value) float64 {
	base, _ := v.Float()
	variance := (f.rng.Float64() - 0.5) * 2 * f.variation * base
	value := float64(int64(base + variance + 0.5))

	// Ensure non-negative
	if value < 0 {
		value = 0
	}
	return value
}
