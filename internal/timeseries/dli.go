package timeseries

import (
	"math"
	"time"

	"github.com/quentinrf/plant-monitor/services/farm-service/internal/domain"
)

// Upper bounds of the simulated DLI series
const (
	MaxIntegral     = 25.0  // mol/m²/day
	MaxProgress     = 100.0 // percent of the daily target
	MaxElapsedHours = 24.0
)

// DLI holds the simulated daily light integral series.
// Values only grow and stay clamped at their maxima; there is no daily reset.
type DLI struct {
	Integral Series
	Progress Series
	Elapsed  Series
}

// NewDLI creates an empty accumulator
func NewDLI(capacity int) DLI {
	return DLI{
		Integral: NewSeries(capacity),
		Progress: NewSeries(capacity),
		Elapsed:  NewSeries(capacity),
	}
}

// Step returns the next state: each series grows by a random increment, is
// clamped to its maximum, and gets a sample stamped ts.
func (d DLI) Step(rng Rand, ts time.Time) DLI {
	integral := math.Min(MaxIntegral, d.Integral.LastValue()+rng.Float64()*2)
	progress := math.Min(MaxProgress, d.Progress.LastValue()+rng.Float64()*2)
	elapsed := math.Min(MaxElapsedHours, d.Elapsed.LastValue()+0.05+rng.Float64()*0.05)

	return DLI{
		Integral: d.Integral.Append(domain.Sample{Timestamp: ts, Value: integral}),
		Progress: d.Progress.Append(domain.Sample{Timestamp: ts, Value: progress}),
		Elapsed:  d.Elapsed.Append(domain.Sample{Timestamp: ts, Value: elapsed}),
	}
}

// Series returns the series of a DLI channel
func (d DLI) Series(channel domain.Channel) Series {
	switch channel {
	case domain.ChannelDLI:
		return d.Integral
	case domain.ChannelDLIProgress:
		return d.Progress
	case domain.ChannelElapsedHours:
		return d.Elapsed
	}
	return NewSeries(d.Integral.Capacity())
}
