// Package timeseries holds the rolling sample buffers behind the farm charts
// and the simulated daily light integral.
//
// Every value in this package is immutable: appending returns a new value and
// never touches slices handed out earlier, so states can be shared with
// renderers without copying.
package timeseries

import (
	"time"

	"github.com/quentinrf/plant-monitor/services/farm-service/internal/domain"
)

// DefaultCapacity is the number of samples a chart keeps
const DefaultCapacity = 20

// Series is a fixed-capacity FIFO window of samples in chronological order
type Series struct {
	capacity int
	samples  []domain.Sample
}

// NewSeries creates an empty series. Non-positive capacities use DefaultCapacity.
func NewSeries(capacity int) Series {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return Series{capacity: capacity}
}

// Append returns a new series with the sample added at the tail.
// The oldest sample is dropped once the series would exceed its capacity.
func (s Series) Append(sample domain.Sample) Series {
	if s.capacity <= 0 {
		s.capacity = DefaultCapacity
	}

	keep := s.samples
	if len(keep) >= s.capacity {
		keep = keep[len(keep)-s.capacity+1:]
	}

	next := make([]domain.Sample, 0, len(keep)+1)
	next = append(next, keep...)
	next = append(next, sample)

	return Series{capacity: s.capacity, samples: next}
}

// Len returns the number of samples held
func (s Series) Len() int {
	return len(s.samples)
}

// Capacity returns the maximum number of samples held
func (s Series) Capacity() int {
	return s.capacity
}

// Samples returns a copy of the samples, oldest first
func (s Series) Samples() []domain.Sample {
	out := make([]domain.Sample, len(s.samples))
	copy(out, s.samples)
	return out
}

// Values returns the sample values, oldest first
func (s Series) Values() []float64 {
	out := make([]float64, len(s.samples))
	for i, sample := range s.samples {
		out[i] = sample.Value
	}
	return out
}

// Timestamps returns the sample timestamps, oldest first
func (s Series) Timestamps() []time.Time {
	out := make([]time.Time, len(s.samples))
	for i, sample := range s.samples {
		out[i] = sample.Timestamp
	}
	return out
}

// Last returns the newest sample
func (s Series) Last() (domain.Sample, bool) {
	if len(s.samples) == 0 {
		return domain.Sample{}, false
	}
	return s.samples[len(s.samples)-1], true
}

// LastValue returns the newest value, or 0 for an empty series
func (s Series) LastValue() float64 {
	last, ok := s.Last()
	if !ok {
		return 0
	}
	return last.Value
}
