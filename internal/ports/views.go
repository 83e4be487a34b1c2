package ports

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/quentinrf/plant-monitor/services/farm-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/farm-service/internal/metrics"
	"github.com/quentinrf/plant-monitor/services/farm-service/internal/timeseries"
)

// DetailView is one open farm detail page with its own sampler
type DetailView struct {
	ID       uuid.UUID
	FarmID   string
	OpenedAt time.Time

	sampler  *Sampler
	handle   *Handle
	lastSeen time.Time // guarded by Views.mu
}

// Charts returns the latest environment buffer
func (v *DetailView) Charts() timeseries.Buffer {
	buf, _ := v.sampler.Charts().Latest()
	return buf
}

// DLI returns the latest DLI state
func (v *DetailView) DLI() timeseries.DLI {
	dli, _ := v.sampler.DLI().Latest()
	return dli
}

// Sampler exposes the view's feeds for subscribers
func (v *DetailView) Sampler() *Sampler {
	return v.sampler
}

// ViewsConfig bounds the detail views kept open
type ViewsConfig struct {
	// Sampler supplies everything but the farm id
	Sampler SamplerConfig

	// MaxViews caps open views; zero means no cap
	MaxViews int
	// IdleTimeout closes views nobody has read for that long; zero disables expiry
	IdleTimeout time.Duration

	NewTicker TickerFactory
	Now       func() time.Time
}

// Views tracks open detail views. Each view's state belongs to that view only.
type Views struct {
	mu       sync.Mutex
	views    map[uuid.UUID]*DetailView
	resolver *Resolver
	template SamplerConfig
	metrics  *metrics.Metrics

	maxViews    int
	idleTimeout time.Duration
	newTicker   TickerFactory
	now         func() time.Time
}

// NewViews creates a registry of detail views reading from resolver
func NewViews(resolver *Resolver, cfg ViewsConfig, m *metrics.Metrics) *Views {
	template := cfg.Sampler
	if template.NewRand == nil {
		template.NewRand = SeededRand(0)
	}
	template.Metrics = m
	if cfg.NewTicker == nil {
		cfg.NewTicker = NewRealTicker
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Views{
		views:       make(map[uuid.UUID]*DetailView),
		resolver:    resolver,
		template:    template,
		metrics:     m,
		maxViews:    cfg.MaxViews,
		idleTimeout: cfg.IdleTimeout,
		newTicker:   cfg.NewTicker,
		now:         cfg.Now,
	}
}

// Open starts a detail view for farmID
func (v *Views) Open(farmID string) (*DetailView, error) {
	farmID = domain.NormalizeFarmID(farmID)
	if farmID == "" {
		return nil, domain.ErrInvalidFarmID
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.maxViews > 0 && len(v.views) >= v.maxViews {
		log.Warn().Str("farm_id", farmID).Int("max_views", v.maxViews).Msg("detail view limit reached")
		return nil, domain.ErrTooManyViews
	}

	cfg := v.template
	cfg.FarmID = farmID
	sampler := NewSampler(v.resolver, cfg)

	now := v.now()
	view := &DetailView{
		ID:       uuid.New(),
		FarmID:   farmID,
		OpenedAt: now,
		sampler:  sampler,
		lastSeen: now,
	}
	// Views outlive the request that opened them; Close, Reap or CloseAll ends them
	view.handle = sampler.Start(context.Background())

	v.views[view.ID] = view
	v.metrics.ViewOpened()

	log.Info().Str("view_id", view.ID.String()).Str("farm_id", farmID).Msg("opened detail view")
	return view, nil
}

// Get returns an open view and marks it as seen
func (v *Views) Get(id uuid.UUID) (*DetailView, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	view, ok := v.views[id]
	if !ok {
		return nil, domain.ErrViewNotFound
	}
	view.lastSeen = v.now()
	return view, nil
}

// Close stops a view's sampler and forgets it
func (v *Views) Close(id uuid.UUID) error {
	v.mu.Lock()
	view, ok := v.views[id]
	delete(v.views, id)
	v.mu.Unlock()

	if !ok {
		return domain.ErrViewNotFound
	}

	view.handle.Cancel()
	v.metrics.ViewClosed()
	log.Info().Str("view_id", id.String()).Str("farm_id", view.FarmID).Msg("closed detail view")
	return nil
}

// Reap closes every view idle for at least the idle timeout as of now
func (v *Views) Reap(now time.Time) int {
	if v.idleTimeout <= 0 {
		return 0
	}

	v.mu.Lock()
	var expired []uuid.UUID
	for id, view := range v.views {
		if now.Sub(view.lastSeen) >= v.idleTimeout {
			expired = append(expired, id)
		}
	}
	v.mu.Unlock()

	closed := 0
	for _, id := range expired {
		if v.Close(id) == nil {
			closed++
		}
	}
	if closed > 0 {
		log.Info().Int("closed", closed).Dur("idle_timeout", v.idleTimeout).Msg("reaped idle detail views")
	}
	return closed
}

// StartReaper reaps idle views every half idle timeout until the handle is cancelled.
// Without an idle timeout it does nothing.
func (v *Views) StartReaper(ctx context.Context) *Handle {
	if v.idleTimeout <= 0 {
		return newHandle(nil)
	}

	ctx, cancel := context.WithCancel(ctx)
	ticker := v.newTicker(v.idleTimeout / 2)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case ts := <-ticker.C():
				if ctx.Err() != nil {
					return
				}
				v.Reap(ts)
			case <-ctx.Done():
				return
			}
		}
	}()

	return newHandle(func() {
		cancel()
		<-done
	})
}

// CloseAll stops every open view
func (v *Views) CloseAll() {
	v.mu.Lock()
	ids := make([]uuid.UUID, 0, len(v.views))
	for id := range v.views {
		ids = append(ids, id)
	}
	v.mu.Unlock()

	for _, id := range ids {
		_ = v.Close(id)
	}
}

// Len returns the number of open views
func (v *Views) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.views)
}
