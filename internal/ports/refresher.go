package ports

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/quentinrf/plant-monitor/services/farm-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/farm-service/internal/metrics"
)

// DefaultRefreshInterval is the live endpoint polling period
const DefaultRefreshInterval = 5 * time.Second

// RefresherConfig configures one farm card feed
type RefresherConfig struct {
	FarmID string

	// Fetcher is nil for farms without a live source
	Fetcher  SnapshotFetcher
	Store    domain.SnapshotStore
	Resolver *Resolver
	Interval time.Duration

	Metrics   *metrics.Metrics
	NewTicker TickerFactory
}

// Refresher keeps a farm card's snapshot up to date.
// For the live farm it polls the fetcher and writes through to the cache;
// every other farm gets its static fallback once.
type Refresher struct {
	farmID    string
	fetcher   SnapshotFetcher
	store     domain.SnapshotStore
	resolver  *Resolver
	interval  time.Duration
	metrics   *metrics.Metrics
	newTicker TickerFactory
	hub       *Hub[domain.Snapshot]
}

// NewRefresher creates a refresher publishing to its own hub
func NewRefresher(cfg RefresherConfig) *Refresher {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultRefreshInterval
	}
	if cfg.NewTicker == nil {
		cfg.NewTicker = NewRealTicker
	}

	return &Refresher{
		farmID:    domain.NormalizeFarmID(cfg.FarmID),
		fetcher:   cfg.Fetcher,
		store:     cfg.Store,
		resolver:  cfg.Resolver,
		interval:  cfg.Interval,
		metrics:   cfg.Metrics,
		newTicker: cfg.NewTicker,
		hub:       NewHub[domain.Snapshot](),
	}
}

// Hub returns the snapshot feed of this farm
func (r *Refresher) Hub() *Hub[domain.Snapshot] {
	return r.hub
}

// Live reports whether this refresher polls the live endpoint
func (r *Refresher) Live() bool {
	return r.fetcher != nil
}

// Start publishes the initial snapshot and, for the live farm, begins polling.
// Polling runs in a goroutine until the returned handle is cancelled.
func (r *Refresher) Start(ctx context.Context) *Handle {
	if r.fetcher == nil {
		r.hub.Publish(r.resolver.Fallback(r.farmID).Snapshot())
		return newHandle(nil)
	}

	r.hub.Publish(r.resolver.Resolve(ctx, r.farmID))

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		r.run(ctx)
	}()

	return newHandle(func() {
		cancel()
		<-done
	})
}

func (r *Refresher) run(ctx context.Context) {
	log.Info().
		Str("farm_id", r.farmID).
		Dur("interval", r.interval).
		Msg("starting live refresher")

	ticker := r.newTicker(r.interval)
	defer ticker.Stop()

	// Fetch immediately on start
	r.refreshOnce(ctx)

	for {
		select {
		case <-ticker.C():
			if ctx.Err() != nil {
				return
			}
			r.refreshOnce(ctx)

		case <-ctx.Done():
			log.Info().Str("farm_id", r.farmID).Msg("stopping live refresher")
			return
		}
	}
}

// refreshOnce fetches, caches and publishes one reading.
// Failures are logged and the previous snapshot stays in place.
func (r *Refresher) refreshOnce(ctx context.Context) {
	start := time.Now()
	reading, err := r.fetcher.Fetch(ctx)
	if ctx.Err() != nil {
		return
	}
	r.metrics.ObserveFetch(r.farmID, time.Since(start), err)
	if err != nil {
		log.Error().Err(err).Str("farm_id", r.farmID).Msg("failed to fetch live snapshot")
		return
	}

	raw, err := json.Marshal(reading)
	if err != nil {
		log.Error().Err(err).Str("farm_id", r.farmID).Msg("failed to encode snapshot")
		return
	}
	if err := r.store.Set(ctx, domain.StorageKey(r.farmID), raw); err != nil {
		log.Error().Err(err).Str("farm_id", r.farmID).Msg("failed to cache snapshot")
		// Don't fail - the card still gets the fresh reading
	}

	snapshot := reading.Snapshot()
	r.hub.Publish(snapshot)

	log.Debug().
		Str("farm_id", r.farmID).
		Str("temperature", snapshot.Temperature).
		Str("humidity", snapshot.Humidity).
		Str("sunlight", snapshot.Sunlight).
		Msg("refreshed live snapshot")
}
