package ports

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/quentinrf/plant-monitor/services/farm-service/internal/domain"
)

// manualTicker only fires when the test sends on ch
type manualTicker struct {
	ch chan time.Time
}

func (m *manualTicker) C() <-chan time.Time { return m.ch }
func (m *manualTicker) Stop()               {}

// manualClock hands out manual tickers in creation order
type manualClock struct {
	created chan *manualTicker
}

func newManualClock() *manualClock {
	return &manualClock{created: make(chan *manualTicker, 64)}
}

func (c *manualClock) NewTicker(d time.Duration) Ticker {
	t := &manualTicker{ch: make(chan time.Time)}
	c.created <- t
	return t
}

// next waits for the next ticker to be created
func (c *manualClock) next(t *testing.T) *manualTicker {
	t.Helper()
	select {
	case tk := <-c.created:
		return tk
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for ticker")
		return nil
	}
}

// tick delivers one tick; it blocks until the task receives it
func (m *manualTicker) tick(t *testing.T, ts time.Time) {
	t.Helper()
	select {
	case m.ch <- ts:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out delivering tick")
	}
}

// countingFetcher returns a fixed reading and reports every call
type countingFetcher struct {
	mu      sync.Mutex
	n       int
	reading domain.Reading
	err     error
	calls   chan int
}

func newCountingFetcher(reading domain.Reading, err error) *countingFetcher {
	return &countingFetcher{reading: reading, err: err, calls: make(chan int, 128)}
}

func (f *countingFetcher) Fetch(ctx context.Context) (domain.Reading, error) {
	f.mu.Lock()
	f.n++
	n := f.n
	f.mu.Unlock()

	f.calls <- n
	return f.reading, f.err
}

func (f *countingFetcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.n
}

func (f *countingFetcher) waitCall(t *testing.T, want int) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case n := <-f.calls:
			if n >= want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for fetch #%d (got %d)", want, f.count())
		}
	}
}

// waitSnapshot reads a feed until it yields want
func waitSnapshot(t *testing.T, ch <-chan domain.Snapshot, want domain.Snapshot) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case got := <-ch:
			if got == want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for snapshot %+v", want)
		}
	}
}

// failingStore fails every call
type failingStore struct{}

var errStoreDown = errors.New("store down")

func (failingStore) Get(ctx context.Context, key string) ([]byte, error) { return nil, errStoreDown }
func (failingStore) Set(ctx context.Context, key string, value []byte) error {
	return errStoreDown
}

// fixedRand returns the same value forever
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }
