package timeseries

import (
	"github.com/quentinrf/plant-monitor/services/farm-service/internal/domain"
)

// Rand is the random source used for synthetic values.
// *math/rand.Rand satisfies it; tests inject fixed sequences.
type Rand interface {
	// Float64 returns a value in [0.0, 1.0)
	Float64() float64
}

// Range is a half-open interval [Min, Max)
type Range struct {
	Min float64
	Max float64
}

// Draw returns a uniformly distributed value in the range
func (r Range) Draw(rng Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// SyntheticRanges are used when a farm has no usable reading for a channel
var SyntheticRanges = map[domain.Channel]Range{
	domain.ChannelTemperature: {Min: 10, Max: 40},
	domain.ChannelHumidity:    {Min: 30, Max: 80},
	domain.ChannelSunlight:    {Min: 500, Max: 1500},
}

// ChannelValue picks the value to chart for a channel: the reading's value when
// it is numeric, a synthetic draw otherwise. live reports which one it was.
func ChannelValue(channel domain.Channel, reading domain.Reading, rng Rand) (value float64, live bool) {
	if v, ok := reading.Field(channel).Float(); ok {
		return v, true
	}
	return SyntheticRanges[channel].Draw(rng), false
}
