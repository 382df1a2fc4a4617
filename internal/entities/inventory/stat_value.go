package inventory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// StatValue is either a number or a string. The zero value is the number 0.
type StatValue struct {
	number float64
	text   string
	isText bool
}

// Number creates a numeric stat value
func Number(v float64) StatValue {
	return StatValue{number: v}
}

// Text creates a string stat value
func Text(s string) StatValue {
	return StatValue{text: s, isText: true}
}

// StatValueFrom converts a decoded JSON value. It accepts numbers and strings only.
func StatValueFrom(raw any) (StatValue, bool) {
	switch v := raw.(type) {
	case float64:
		return Number(v), true
	case float32:
		return Number(float64(v)), true
	case int:
		return Number(float64(v)), true
	case int32:
		return Number(float64(v)), true
	case int64:
		return Number(float64(v)), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return StatValue{}, false
		}
		return Number(f), true
	case string:
		return Text(v), true
	default:
		return StatValue{}, false
	}
}

// IsText reports whether the value is a string
func (v StatValue) IsText() bool {
	return v.isText
}

// Float returns the numeric value, false for strings
func (v StatValue) Float() (float64, bool) {
	if v.isText {
		return 0, false
	}
	return v.number, true
}

// Add increments a numeric value. Strings cannot be incremented and are returned unchanged.
func (v StatValue) Add(delta float64) (StatValue, bool) {
	if v.isText {
		return v, false
	}
	return Number(v.number + delta), true
}

// Interface returns the value as float64 or string
func (v StatValue) Interface() any {
	if v.isText {
		return v.text
	}
	return v.number
}

// String formats the value for messages
func (v StatValue) String() string {
	if v.isText {
		return v.text
	}
	return strconv.FormatFloat(v.number, 'f', -1, 64)
}

// MarshalJSON writes a JSON number or string
func (v StatValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON reads a JSON number or string; null leaves the zero value
func (v *StatValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = StatValue{}
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	parsed, ok := StatValueFrom(raw)
	if !ok {
		return fmt.Errorf("stat value must be a number or string, got %s", data)
	}
	*v = parsed
	return nil
}
