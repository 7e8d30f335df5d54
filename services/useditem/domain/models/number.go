package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a request field that accepts a JSON number or a numeric string
// ("10", " 4.5 "). Decoding never fails: anything else is recorded as
// present-but-invalid so the domain validator can report it with the right
// error. A JSON null leaves a *Number nil, which reads as absent.
type Number struct {
	value float64
	blank bool
	valid bool
}

// NewNumber returns a valid Number holding v.
func NewNumber(v float64) *Number {
	return &Number{value: v, valid: !math.IsNaN(v) && !math.IsInf(v, 0)}
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(b []byte) error {
	*n = Number{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		n.blank = true
		return nil
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		s = strings.TrimSpace(s)
		if s == "" {
			n.blank = true
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		n.value = v
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		v, err := strconv.ParseFloat(string(b), 64)
		if err != nil {
			return nil
		}
		n.value = v
	default:
		return nil
	}

	n.valid = !math.IsNaN(n.value) && !math.IsInf(n.value, 0)
	return nil
}

// MarshalJSON implements json.Marshaler so request types round-trip in docs and tests.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}

// Present reports whether n carries a non-empty value.
func (n *Number) Present() bool {
	return n != nil && !n.blank
}

// Float returns the parsed value and whether it is a finite number.
func (n *Number) Float() (float64, bool) {
	if !n.Present() || !n.valid {
		return 0, false
	}
	return n.value, true
}
