package timeseries

import (
	"time"

	"github.com/quentinrf/plant-monitor/services/farm-service/internal/domain"
)

// Buffer groups one Series per channel. Channels are created on first append.
type Buffer struct {
	capacity int
	order    []domain.Channel
	series   map[domain.Channel]Series
}

// NewBuffer creates an empty buffer with the given channels pre-registered
func NewBuffer(capacity int, channels ...domain.Channel) Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	b := Buffer{
		capacity: capacity,
		series:   make(map[domain.Channel]Series, len(channels)),
	}
	for _, ch := range channels {
		if _, ok := b.series[ch]; ok {
			continue
		}
		b.order = append(b.order, ch)
		b.series[ch] = NewSeries(capacity)
	}
	return b
}

// Append returns a new buffer with value recorded on channel at ts.
// The receiver is left untouched.
func (b Buffer) Append(channel domain.Channel, value float64, ts time.Time) Buffer {
	if b.capacity <= 0 {
		b.capacity = DefaultCapacity
	}

	next := Buffer{
		capacity: b.capacity,
		order:    b.order,
		series:   make(map[domain.Channel]Series, len(b.series)+1),
	}
	for ch, s := range b.series {
		next.series[ch] = s
	}

	s, ok := next.series[channel]
	if !ok {
		s = NewSeries(b.capacity)
		order := make([]domain.Channel, len(b.order), len(b.order)+1)
		copy(order, b.order)
		next.order = append(order, channel)
	}
	next.series[channel] = s.Append(domain.Sample{Timestamp: ts, Value: value})

	return next
}

// Series returns the series of a channel (empty if never appended)
func (b Buffer) Series(channel domain.Channel) Series {
	if s, ok := b.series[channel]; ok {
		return s
	}
	return NewSeries(b.capacity)
}

// Channels returns the channels in registration order
func (b Buffer) Channels() []domain.Channel {
	out := make([]domain.Channel, len(b.order))
	copy(out, b.order)
	return out
}

// Capacity returns the per-channel capacity
func (b Buffer) Capacity() int {
	return b.capacity
}
