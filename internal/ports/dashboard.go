package ports

import (
	"context"
	"time"

	"github.com/quentinrf/plant-monitor/services/farm-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/farm-service/internal/metrics"
)

// DashboardConfig lists the farms shown on the landing page
type DashboardConfig struct {
	Farms    []string
	LiveFarm string
	Interval time.Duration

	NewTicker TickerFactory
}

// FarmCard is one entry of the landing page
type FarmCard struct {
	ID            string          `json:"id"`
	Live          bool            `json:"live"`
	Snapshot      domain.Snapshot `json:"status"`
	LightCategory string          `json:"light_category,omitempty"`
}

// Dashboard owns one card feed per listed farm
type Dashboard struct {
	farms      []string
	resolver   *Resolver
	refreshers map[string]*Refresher
}

// NewDashboard wires a refresher for every farm; only LiveFarm gets the fetcher
func NewDashboard(cfg DashboardConfig, resolver *Resolver, fetcher SnapshotFetcher, store domain.SnapshotStore, m *metrics.Metrics) *Dashboard {
	d := &Dashboard{
		resolver:   resolver,
		refreshers: make(map[string]*Refresher, len(cfg.Farms)),
	}

	liveFarm := domain.NormalizeFarmID(cfg.LiveFarm)
	for _, id := range cfg.Farms {
		id = domain.NormalizeFarmID(id)
		if _, dup := d.refreshers[id]; dup || id == "" {
			continue
		}

		rc := RefresherConfig{
			FarmID:    id,
			Store:     store,
			Resolver:  resolver,
			Interval:  cfg.Interval,
			Metrics:   m,
			NewTicker: cfg.NewTicker,
		}
		if id == liveFarm {
			rc.Fetcher = fetcher
		}

		d.farms = append(d.farms, id)
		d.refreshers[id] = NewRefresher(rc)
	}

	return d
}

// Start starts every card feed. Cancelling the handle stops all of them.
func (d *Dashboard) Start(ctx context.Context) *Handle {
	handles := make([]*Handle, 0, len(d.farms))
	for _, id := range d.farms {
		handles = append(handles, d.refreshers[id].Start(ctx))
	}
	return groupHandle(handles...)
}

// Farms returns the listed farm ids in display order
func (d *Dashboard) Farms() []string {
	out := make([]string, len(d.farms))
	copy(out, d.farms)
	return out
}

// NewFarmCard builds a card, deriving the light category when sunlight is numeric
func NewFarmCard(farmID string, live bool, snapshot domain.Snapshot) FarmCard {
	card := FarmCard{
		ID:       farmID,
		Live:     live,
		Snapshot: snapshot,
	}
	if lux, ok := snapshot.SunlightLux(); ok {
		card.LightCategory = domain.LightCategory(lux)
	}
	return card
}

// Cards returns the landing page entries in display order
func (d *Dashboard) Cards(ctx context.Context) []FarmCard {
	cards := make([]FarmCard, 0, len(d.farms))
	for _, id := range d.farms {
		cards = append(cards, d.Card(ctx, id))
	}
	return cards
}

// Card returns the card of any farm, listed or not
func (d *Dashboard) Card(ctx context.Context, farmID string) FarmCard {
	farmID = domain.NormalizeFarmID(farmID)
	return NewFarmCard(farmID, d.Live(farmID), d.Snapshot(ctx, farmID))
}

// Live reports whether farmID is the polled farm
func (d *Dashboard) Live(farmID string) bool {
	r, ok := d.refreshers[domain.NormalizeFarmID(farmID)]
	return ok && r.Live()
}

// Snapshot returns the current snapshot of any farm. Listed farms answer from
// their feed, everything else goes through the resolver.
func (d *Dashboard) Snapshot(ctx context.Context, farmID string) domain.Snapshot {
	if r, ok := d.refreshers[domain.NormalizeFarmID(farmID)]; ok {
		if snapshot, ok := r.Hub().Latest(); ok {
			return snapshot
		}
	}
	return d.resolver.Resolve(ctx, farmID)
}

// Subscribe follows a listed farm's feed
func (d *Dashboard) Subscribe(farmID string) (<-chan domain.Snapshot, func(), bool) {
	r, ok := d.refreshers[domain.NormalizeFarmID(farmID)]
	if !ok {
		return nil, nil, false
	}
	ch, unsubscribe := r.Hub().Subscribe()
	return ch, unsubscribe, true
}
