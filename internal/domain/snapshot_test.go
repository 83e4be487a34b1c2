package domain

import (
	"encoding/json"
	"math"
	"testing"
)

func TestValue_WithUnit(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{name: "integer number", value: Number(120), want: "120 lux"},
		{name: "fractional number", value: Number(120.5), want: "120.5 lux"},
		{name: "digit string", value: Text("90"), want: "90 lux"},
		{name: "absent", value: Value{}, want: "N/A"},
		{name: "formatted string passes through", value: Text("90 lux"), want: "90 lux"},
		{name: "free text passes through", value: Text("cloudy"), want: "cloudy"},
		{name: "empty string passes through", value: Text(""), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.WithUnit(" lux"); got != tt.want {
				t.Errorf("WithUnit() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValue_UnmarshalJSON(t *testing.T) {
	var r Reading
	raw := `{"temperature":30,"humidity":"50","sunlight":null}`
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if f, ok := r.Temperature.Float(); !ok || f != 30 {
		t.Errorf("temperature = %v (%v), want 30", f, ok)
	}
	if f, ok := r.Humidity.Float(); !ok || f != 50 {
		t.Errorf("humidity = %v (%v), want 50", f, ok)
	}
	if !r.Sunlight.IsAbsent() {
		t.Error("expected null sunlight to decode as absent")
	}
}

func TestValue_UnmarshalJSON_MissingField(t *testing.T) {
	var r Reading
	if err := json.Unmarshal([]byte(`{"temperature":21}`), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !r.Sunlight.IsAbsent() || !r.Humidity.IsAbsent() {
		t.Error("expected missing fields to be absent")
	}
	if got := r.Snapshot().Sunlight; got != "N/A" {
		t.Errorf("sunlight = %q, want N/A", got)
	}
}

func TestReading_RoundTrip(t *testing.T) {
	in := Reading{Temperature: Number(24.5), Humidity: Text("humid"), Sunlight: Value{}}

	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out Reading
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestReading_Snapshot(t *testing.T) {
	got := NewReading(30, 50, 120).Snapshot()
	want := Snapshot{Temperature: "30°C", Humidity: "50%", Sunlight: "120 lux"}
	if got != want {
		t.Errorf("Snapshot() = %+v, want %+v", got, want)
	}
}

func TestReading_SnapshotDoesNotDoubleUnits(t *testing.T) {
	r := Reading{Temperature: Text("30°C"), Humidity: Text("50%"), Sunlight: Text("120 lux")}
	want := Snapshot{Temperature: "30°C", Humidity: "50%", Sunlight: "120 lux"}
	if got := r.Snapshot(); got != want {
		t.Errorf("Snapshot() = %+v, want %+v", got, want)
	}
}

func TestStorageKey(t *testing.T) {
	tests := []struct {
		farmID string
		want   string
	}{
		{farmID: "FARM1", want: "farmStatus_FARM1"},
		{farmID: "farm2", want: "farmStatus_FARM2"},
		{farmID: " Farm3 ", want: "farmStatus_FARM3"},
	}

	for _, tt := range tests {
		t.Run(tt.farmID, func(t *testing.T) {
			if got := StorageKey(tt.farmID); got != tt.want {
				t.Errorf("StorageKey(%q) = %q, want %q", tt.farmID, got, tt.want)
			}
		})
	}
}

func TestLightCategory(t *testing.T) {
	tests := []struct {
		lux  float64
		want string
	}{
		{lux: 100, want: "Low Light"},
		{lux: 199, want: "Low Light"},
		{lux: 200, want: "Medium Light"},
		{lux: 500, want: "Medium Light"},
		{lux: 3000, want: "High Light"},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			if got := LightCategory(tt.lux); got != tt.want {
				t.Errorf("LightCategory(%v) = %v, want %v", tt.lux, got, tt.want)
			}
		})
	}
}

func TestSnapshot_SunlightLux(t *testing.T) {
	tests := []struct {
		sunlight string
		want     float64
		wantOK   bool
	}{
		{sunlight: "120 lux", want: 120, wantOK: true},
		{sunlight: "88.5 lux", want: 88.5, wantOK: true},
		{sunlight: "N/A", wantOK: false},
		{sunlight: "cloudy", wantOK: false},
		{sunlight: "NaN", wantOK: false},
		{sunlight: "Inf lux", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.sunlight, func(t *testing.T) {
			got, ok := Snapshot{Sunlight: tt.sunlight}.SunlightLux()
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("SunlightLux() = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestValue_FloatRejectsNonFinite(t *testing.T) {
	tests := []struct {
		name string
		v    Value
	}{
		{"NaN text", Text("NaN")},
		{"Inf text", Text("Inf")},
		{"infinity text", Text("-infinity")},
		{"NaN number", Number(math.NaN())},
		{"Inf number", Number(math.Inf(1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if f, ok := tt.v.Float(); ok {
				t.Errorf("Float() = (%v, true), want not numeric", f)
			}
		})
	}
}

func TestReading_NonFiniteTextPassesThrough(t *testing.T) {
	var r Reading
	if err := json.Unmarshal([]byte(`{"temperature":"NaN","humidity":50,"sunlight":"Inf"}`), &r); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	want := Snapshot{Temperature: "NaN", Humidity: "50%", Sunlight: "Inf"}
	if got := r.Snapshot(); got != want {
		t.Errorf("Snapshot() = %+v, want %+v", got, want)
	}
}
