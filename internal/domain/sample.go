package domain

import "time"

// Channel identifies one monitored metric's time series
type Channel string

const (
	ChannelTemperature  Channel = "temperature"
	ChannelHumidity     Channel = "humidity"
	ChannelSunlight     Channel = "sunlight"
	ChannelDLI          Channel = "daily_light_integral"
	ChannelDLIProgress  Channel = "dli_progress"
	ChannelElapsedHours Channel = "elapsed_hours"
)

// EnvironmentChannels are the channels fed from farm readings
var EnvironmentChannels = []Channel{ChannelTemperature, ChannelHumidity, ChannelSunlight}

// DLIChannels are the channels derived by the DLI accumulator
var DLIChannels = []Channel{ChannelDLI, ChannelDLIProgress, ChannelElapsedHours}

// Label returns the chart dataset label of the channel
func (c Channel) Label() string {
	switch c {
	case ChannelTemperature:
		return "Temperature (°C)"
	case ChannelHumidity:
		return "Humidity (%)"
	case ChannelSunlight:
		return "Sunlight (lux)"
	case ChannelDLI:
		return "daily_light_integral"
	case ChannelDLIProgress:
		return "DLI Progress (%)"
	case ChannelElapsedHours:
		return "Elapsed hours (h)"
	}
	return string(c)
}

// Field returns the reading field backing an environment channel.
// DLI channels have no backing field and report absent.
func (r Reading) Field(c Channel) Value {
	switch c {
	case ChannelTemperature:
		return r.Temperature
	case ChannelHumidity:
		return r.Humidity
	case ChannelSunlight:
		return r.Sunlight
	}
	return Value{}
}

// Sample is a single timestamped value of one channel
type Sample struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}
