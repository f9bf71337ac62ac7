package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
)

var pinPattern = regexp.MustCompile(`^[0-9]{8}$`)

// PIN is an 8-digit numeric secret. Clients may send it either as a JSON
// string ("00123456") or as a JSON number (123456); numbers are coerced to
// their decimal string form zero-padded to eight digits so that PINs with
// leading zeros round-trip through numeric encoding.
type PIN string

// UnmarshalJSON accepts both string and number representations.
func (p *PIN) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*p = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PIN(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	i, err := n.Int64()
	if err != nil || i < 0 {
		// Non-integer or negative numbers keep their literal form and
		// fail the format check downstream.
		*p = PIN(n.String())
		return nil
	}
	*p = PIN(fmt.Sprintf("%08d", i))
	return nil
}

// MarshalJSON always encodes the PIN as a string.
func (p PIN) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(p))
}

func (p PIN) String() string { return string(p) }

// Valid reports whether the PIN is exactly eight decimal digits.
func (p PIN) Valid() bool {
	return pinPattern.MatchString(string(p))
}
