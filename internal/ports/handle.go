package ports

import (
	"sync"
	"time"
)

// Handle stops a running periodic task
type Handle struct {
	once sync.Once
	stop func()
}

func newHandle(stop func()) *Handle {
	return &Handle{stop: stop}
}

// Cancel stops the task and waits for it to exit. Safe to call repeatedly.
func (h *Handle) Cancel() {
	if h == nil {
		return
	}
	h.once.Do(func() {
		if h.stop != nil {
			h.stop()
		}
	})
}

// groupHandle cancels children in order
func groupHandle(children ...*Handle) *Handle {
	return newHandle(func() {
		for _, child := range children {
			child.Cancel()
		}
	})
}

// Ticker is the part of time.Ticker the periodic tasks use
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates tickers; tests replace it with manual tickers
type TickerFactory func(d time.Duration) Ticker

type realTicker struct {
	t *time.Ticker
}

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// NewRealTicker wraps time.NewTicker
func NewRealTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}
