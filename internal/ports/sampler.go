package ports

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/quentinrf/plant-monitor/services/farm-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/farm-service/internal/metrics"
	"github.com/quentinrf/plant-monitor/services/farm-service/internal/timeseries"
)

// DefaultSampleInterval is the chart update period of a detail view
const DefaultSampleInterval = 5 * time.Second

// SamplerConfig configures the periodic tasks of a detail view
type SamplerConfig struct {
	FarmID   string
	Interval time.Duration
	Capacity int

	// NewRand is called once per task; each task owns its generator
	NewRand   func() timeseries.Rand
	NewTicker TickerFactory
	Metrics   *metrics.Metrics
}

// SeededRand returns a generator factory whose generators are deterministic
// for a given seed. A zero seed uses the clock.
func SeededRand(seed int64) func() timeseries.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	var mu sync.Mutex
	var n int64
	return func() timeseries.Rand {
		mu.Lock()
		defer mu.Unlock()
		n++
		return rand.New(rand.NewSource(seed + n))
	}
}

// Sampler drives the charts of one detail view: an environment buffer task and
// a DLI task, running independently on the same period.
type Sampler struct {
	farmID    string
	interval  time.Duration
	capacity  int
	newRand   func() timeseries.Rand
	newTicker TickerFactory
	metrics   *metrics.Metrics
	resolver  *Resolver

	charts *Hub[timeseries.Buffer]
	dli    *Hub[timeseries.DLI]
}

// NewSampler creates a sampler for cfg.FarmID reading live values from resolver
func NewSampler(resolver *Resolver, cfg SamplerConfig) *Sampler {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultSampleInterval
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = timeseries.DefaultCapacity
	}
	if cfg.NewRand == nil {
		cfg.NewRand = SeededRand(0)
	}
	if cfg.NewTicker == nil {
		cfg.NewTicker = NewRealTicker
	}

	return &Sampler{
		farmID:    domain.NormalizeFarmID(cfg.FarmID),
		interval:  cfg.Interval,
		capacity:  cfg.Capacity,
		newRand:   cfg.NewRand,
		newTicker: cfg.NewTicker,
		metrics:   cfg.Metrics,
		resolver:  resolver,
		charts:    NewHub[timeseries.Buffer](),
		dli:       NewHub[timeseries.DLI](),
	}
}

// Charts returns the environment buffer feed
func (s *Sampler) Charts() *Hub[timeseries.Buffer] {
	return s.charts
}

// DLI returns the DLI feed
func (s *Sampler) DLI() *Hub[timeseries.DLI] {
	return s.dli
}

// Start publishes empty states and starts both tasks.
// Samples only appear on ticks.
func (s *Sampler) Start(ctx context.Context) *Handle {
	buf := timeseries.NewBuffer(s.capacity, domain.EnvironmentChannels...)
	dli := timeseries.NewDLI(s.capacity)
	s.charts.Publish(buf)
	s.dli.Publish(dli)

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup

	chartRand := s.newRand()
	s.every(ctx, &wg, func(ts time.Time) {
		reading := s.resolver.Current(ctx, s.farmID)
		for _, ch := range domain.EnvironmentChannels {
			v, live := timeseries.ChannelValue(ch, reading, chartRand)
			buf = buf.Append(ch, v, ts)
			s.metrics.SampleAppended(ch, live)
		}
		s.charts.Publish(buf)
	})

	dliRand := s.newRand()
	s.every(ctx, &wg, func(ts time.Time) {
		dli = dli.Step(dliRand, ts)
		s.dli.Publish(dli)
	})

	log.Info().
		Str("farm_id", s.farmID).
		Dur("interval", s.interval).
		Msg("started detail view sampler")

	return newHandle(func() {
		cancel()
		wg.Wait()
		log.Info().Str("farm_id", s.farmID).Msg("stopped detail view sampler")
	})
}

// every runs fn on each tick until ctx is done
func (s *Sampler) every(ctx context.Context, wg *sync.WaitGroup, fn func(ts time.Time)) {
	ticker := s.newTicker(s.interval)
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer ticker.Stop()
		for {
			select {
			case ts := <-ticker.C():
				if ctx.Err() != nil {
					return
				}
				fn(ts)
			case <-ctx.Done():
				return
			}
		}
	}()
}
