package domain

import "strings"

// NotAvailable is shown for any field with no known value
const NotAvailable = "N/A"

const storageKeyPrefix = "farmStatus_"

const (
	unitCelsius = "°C"
	unitPercent = "%"
	unitLux     = " lux"
)

// Reading is the raw environmental reading of one farm.
// This is what the live endpoint returns and what the cache stores.
type Reading struct {
	Temperature Value `json:"temperature"`
	Humidity    Value `json:"humidity"`
	Sunlight    Value `json:"sunlight"`
}

// NewReading builds a reading from numeric values
func NewReading(temperature, humidity, sunlight float64) Reading {
	return Reading{
		Temperature: Number(temperature),
		Humidity:    Number(humidity),
		Sunlight:    Number(sunlight),
	}
}

// Snapshot is the unit-annotated display form of a reading
type Snapshot struct {
	Temperature string `json:"temperature"`
	Humidity    string `json:"humidity"`
	Sunlight    string `json:"sunlight"`
}

// UnavailableSnapshot is reported for farms nobody knows anything about
func UnavailableSnapshot() Snapshot {
	return Snapshot{
		Temperature: NotAvailable,
		Humidity:    NotAvailable,
		Sunlight:    NotAvailable,
	}
}

// Snapshot formats the reading for display
func (r Reading) Snapshot() Snapshot {
	return Snapshot{
		Temperature: r.Temperature.WithUnit(unitCelsius),
		Humidity:    r.Humidity.WithUnit(unitPercent),
		Sunlight:    r.Sunlight.WithUnit(unitLux),
	}
}

// NormalizeFarmID returns the canonical (uppercase) form of a farm identifier
func NormalizeFarmID(farmID string) string {
	return strings.ToUpper(strings.TrimSpace(farmID))
}

// StorageKey returns the cache key of a farm's last known reading
func StorageKey(farmID string) string {
	return storageKeyPrefix + NormalizeFarmID(farmID)
}

// DefaultFallbacks returns the static readings shown for the demo farms
// when nothing is cached for them.
func DefaultFallbacks() map[string]Reading {
	return map[string]Reading{
		"FARM1": NewReading(27, 65, 90),
		"FARM2": NewReading(24, 72, 60),
		"FARM3": NewReading(29, 58, 95),
	}
}

// LightCategory returns human-readable category for a lux level
// Business logic: < 200 lux is low, 200-2500 lux is medium, >= 2500 is high
func LightCategory(lux float64) string {
	if lux < 200 {
		return "Low Light"
	} else if lux < 2500 {
		return "Medium Light"
	}
	return "High Light"
}

// SunlightLux parses the lux level back out of the display form
func (s Snapshot) SunlightLux() (float64, bool) {
	return Text(strings.TrimSuffix(s.Sunlight, unitLux)).Float()
}
