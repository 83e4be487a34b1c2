package farmapi

import (
	"google.golang.org/protobuf/types/known/structpb"
)

// Struct field names of a farm status message
const (
	FieldFarmID        = "farm_id"
	FieldLive          = "live"
	FieldTemperature   = "temperature"
	FieldHumidity      = "humidity"
	FieldSunlight      = "sunlight"
	FieldLightCategory = "light_category"
)

// FarmStatus is the typed view of a farm status Struct
type FarmStatus struct {
	FarmID        string
	Live          bool
	Temperature   string
	Humidity      string
	Sunlight      string
	LightCategory string
}

// Struct encodes the status for the wire. An empty light category is omitted.
func (s FarmStatus) Struct() *structpb.Struct {
	fields := map[string]*structpb.Value{
		FieldFarmID:      structpb.NewStringValue(s.FarmID),
		FieldLive:        structpb.NewBoolValue(s.Live),
		FieldTemperature: structpb.NewStringValue(s.Temperature),
		FieldHumidity:    structpb.NewStringValue(s.Humidity),
		FieldSunlight:    structpb.NewStringValue(s.Sunlight),
	}
	if s.LightCategory != "" {
		fields[FieldLightCategory] = structpb.NewStringValue(s.LightCategory)
	}
	return &structpb.Struct{Fields: fields}
}

// FarmStatusFromStruct decodes a status message; missing fields stay zero
func FarmStatusFromStruct(st *structpb.Struct) FarmStatus {
	f := st.GetFields()
	return FarmStatus{
		FarmID:        f[FieldFarmID].GetStringValue(),
		Live:          f[FieldLive].GetBoolValue(),
		Temperature:   f[FieldTemperature].GetStringValue(),
		Humidity:      f[FieldHumidity].GetStringValue(),
		Sunlight:      f[FieldSunlight].GetStringValue(),
		LightCategory: f[FieldLightCategory].GetStringValue(),
	}
}

// FarmStatusesFromList decodes a ListFarms response, skipping non-struct entries
func FarmStatusesFromList(list *structpb.ListValue) []FarmStatus {
	out := make([]FarmStatus, 0, len(list.GetValues()))
	for _, v := range list.GetValues() {
		if st := v.GetStructValue(); st != nil {
			out = append(out, FarmStatusFromStruct(st))
		}
	}
	return out
}
