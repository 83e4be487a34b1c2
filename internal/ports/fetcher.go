package ports

import (
	"context"

	"github.com/quentinrf/plant-monitor/services/farm-service/internal/domain"
)

// SnapshotFetcher defines how to obtain a fresh reading for the live farm
// This is a PORT - adapters (HTTP endpoint, Mock) will implement it
type SnapshotFetcher interface {
	// Fetch returns the current reading
	Fetch(ctx context.Context) (domain.Reading, error)
}
