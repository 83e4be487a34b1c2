package ports

import (
	"sync"
)

// Hub fans immutable states out to subscribers.
// Publishing never blocks: a subscriber that falls behind only sees the newest
// state, so rendering can run at its own pace.
type Hub[T any] struct {
	mu     sync.Mutex
	subs   map[uint64]chan T
	nextID uint64
	latest T
	has    bool
}

// NewHub creates a hub with no state yet
func NewHub[T any]() *Hub[T] {
	return &Hub[T]{subs: make(map[uint64]chan T)}
}

// Publish records v as the latest state and offers it to every subscriber
func (h *Hub[T]) Publish(v T) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.latest = v
	h.has = true
	for _, ch := range h.subs {
		offer(ch, v)
	}
}

// Latest returns the most recently published state
func (h *Hub[T]) Latest() (T, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latest, h.has
}

// Subscribe returns a channel primed with the latest state (if any) and a
// function that unsubscribes and closes the channel. The function may be
// called more than once.
func (h *Hub[T]) Subscribe() (<-chan T, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++

	ch := make(chan T, 1)
	if h.has {
		ch <- h.latest
	}
	h.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs, id)
			close(ch)
		})
	}
}

// offer replaces any pending value with v. Callers hold the hub lock, which is
// the only place sends happen, so the slot is free after the drain.
func offer[T any](ch chan T, v T) {
	select {
	case <-ch:
	default:
	}
	ch <- v
}
