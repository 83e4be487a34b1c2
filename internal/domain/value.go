package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

type valueKind uint8

const (
	kindAbsent valueKind = iota
	kindNumber
	kindText
)

// Value is one reading field as it arrives from the endpoint or the cache.
// It is either absent, a number, or an arbitrary string.
type Value struct {
	kind valueKind
	num  float64
	text string
}

// Number wraps a numeric field value
func Number(v float64) Value {
	return Value{kind: kindNumber, num: v}
}

// Text wraps a string field value
func Text(s string) Value {
	return Value{kind: kindText, text: s}
}

// IsAbsent reports whether the field was missing or null
func (v Value) IsAbsent() bool {
	return v.kind == kindAbsent
}

// Float returns the numeric value of a number or of a string that parses as one.
// NaN and infinities are not numeric.
func (v Value) Float() (float64, bool) {
	var f float64
	switch v.kind {
	case kindNumber:
		f = v.num
	case kindText:
		var err error
		f, err = strconv.ParseFloat(v.text, 64)
		if err != nil {
			return 0, false
		}
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// WithUnit formats the value for display.
// Numbers and digit-only strings get the unit appended, absent values become
// NotAvailable, and any other string is returned unchanged.
func (v Value) WithUnit(unit string) string {
	switch v.kind {
	case kindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64) + unit
	case kindText:
		if isDigits(v.text) {
			return v.text + unit
		}
		return v.text
	}
	return NotAvailable
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// MarshalJSON encodes absent values as null
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case kindNumber:
		return json.Marshal(v.num)
	case kindText:
		return json.Marshal(v.text)
	}
	return []byte("null"), nil
}

// UnmarshalJSON accepts numbers, strings and null
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Value{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
		return nil
	case 't', 'f', '{', '[':
		// passed through as-is, display shows the raw JSON
		*v = Text(string(data))
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("invalid reading value: %w", err)
	}
	*v = Number(f)
	return nil
}
