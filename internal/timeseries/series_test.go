package timeseries

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/quentinrf/plant-monitor/services/farm-service/internal/domain"
)

// fixedRand returns the same value forever
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

func TestSeries_AppendKeepsLastN(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		appends  int
	}{
		{name: "below capacity", capacity: 20, appends: 5},
		{name: "exactly capacity", capacity: 20, appends: 20},
		{name: "one over", capacity: 20, appends: 21},
		{name: "many over", capacity: 20, appends: 57},
		{name: "capacity one", capacity: 1, appends: 4},
	}

	base := time.Unix(1_700_000_000, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSeries(tt.capacity)
			for i := 0; i < tt.appends; i++ {
				s = s.Append(domain.Sample{Timestamp: base.Add(time.Duration(i) * 5 * time.Second), Value: float64(i)})
			}

			wantLen := tt.appends
			if wantLen > tt.capacity {
				wantLen = tt.capacity
			}
			if s.Len() != wantLen {
				t.Fatalf("Len() = %d, want %d", s.Len(), wantLen)
			}

			first := tt.appends - wantLen
			for i, v := range s.Values() {
				if v != float64(first+i) {
					t.Fatalf("value[%d] = %v, want %v", i, v, float64(first+i))
				}
			}
		})
	}
}

func TestSeries_AppendDoesNotMutatePrevious(t *testing.T) {
	s := NewSeries(3)
	for i := 0; i < 3; i++ {
		s = s.Append(domain.Sample{Value: float64(i)})
	}
	before := s.Values()

	next := s.Append(domain.Sample{Value: 99})

	after := s.Values()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("previous series changed at %d: %v -> %v", i, before[i], after[i])
		}
	}
	if got := next.Values(); got[0] != 1 || got[2] != 99 {
		t.Errorf("next values = %v, want [1 2 99]", got)
	}
}

func TestSeries_DefaultCapacity(t *testing.T) {
	if got := NewSeries(0).Capacity(); got != DefaultCapacity {
		t.Errorf("Capacity() = %d, want %d", got, DefaultCapacity)
	}
	var zero Series
	if got := zero.Append(domain.Sample{}).Capacity(); got != DefaultCapacity {
		t.Errorf("zero value Capacity() after append = %d, want %d", got, DefaultCapacity)
	}
}

func TestSeries_LastValueEmpty(t *testing.T) {
	if got := NewSeries(5).LastValue(); got != 0 {
		t.Errorf("LastValue() = %v, want 0", got)
	}
}

func TestBuffer_AppendPerChannel(t *testing.T) {
	b := NewBuffer(2, domain.EnvironmentChannels...)
	ts := time.Now()

	b1 := b.Append(domain.ChannelTemperature, 21, ts)
	b2 := b1.Append(domain.ChannelTemperature, 22, ts)
	b3 := b2.Append(domain.ChannelTemperature, 23, ts)
	b3 = b3.Append(domain.ChannelHumidity, 60, ts)

	if got := b3.Series(domain.ChannelTemperature).Values(); len(got) != 2 || got[0] != 22 || got[1] != 23 {
		t.Errorf("temperature = %v, want [22 23]", got)
	}
	if got := b3.Series(domain.ChannelHumidity).Len(); got != 1 {
		t.Errorf("humidity len = %d, want 1", got)
	}
	if got := b3.Series(domain.ChannelSunlight).Len(); got != 0 {
		t.Errorf("sunlight len = %d, want 0", got)
	}

	// earlier states are untouched
	if got := b.Series(domain.ChannelTemperature).Len(); got != 0 {
		t.Errorf("initial buffer changed: len = %d", got)
	}
	if got := b1.Series(domain.ChannelTemperature).Values(); len(got) != 1 || got[0] != 21 {
		t.Errorf("b1 changed: %v", got)
	}
}

func TestBuffer_LazyChannel(t *testing.T) {
	b := NewBuffer(DefaultCapacity)
	b = b.Append(domain.ChannelSunlight, 700, time.Now())

	chans := b.Channels()
	if len(chans) != 1 || chans[0] != domain.ChannelSunlight {
		t.Errorf("Channels() = %v, want [sunlight]", chans)
	}
}

func TestChannelValue(t *testing.T) {
	rng := fixedRand(0.5)

	tests := []struct {
		name     string
		reading  domain.Reading
		channel  domain.Channel
		want     float64
		wantLive bool
	}{
		{"number", domain.Reading{Temperature: domain.Number(31)}, domain.ChannelTemperature, 31, true},
		{"numeric text", domain.Reading{Humidity: domain.Text("48.5")}, domain.ChannelHumidity, 48.5, true},
		{"free text", domain.Reading{Humidity: domain.Text("n/a")}, domain.ChannelHumidity, 55, false},
		{"absent", domain.Reading{}, domain.ChannelSunlight, 1000, false},
		{"NaN text", domain.Reading{Temperature: domain.Text("NaN")}, domain.ChannelTemperature, 25, false},
		{"Inf text", domain.Reading{Sunlight: domain.Text("Inf")}, domain.ChannelSunlight, 1000, false},
		{"negative infinity text", domain.Reading{Humidity: domain.Text("-infinity")}, domain.ChannelHumidity, 55, false},
		{"NaN number", domain.Reading{Temperature: domain.Number(math.NaN())}, domain.ChannelTemperature, 25, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, live := ChannelValue(tt.channel, tt.reading, rng)
			if got != tt.want || live != tt.wantLive {
				t.Errorf("ChannelValue() = (%v, %v), want (%v, %v)", got, live, tt.want, tt.wantLive)
			}
		})
	}
}

func TestSyntheticRanges_StayInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for ch, r := range SyntheticRanges {
		for i := 0; i < 1000; i++ {
			v := r.Draw(rng)
			if v < r.Min || v >= r.Max {
				t.Fatalf("%s draw %v outside [%v,%v)", ch, v, r.Min, r.Max)
			}
		}
	}
}
