// Package models defines data structures for missing plot estimation.
package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Value is an observed number or the missing marker.
// The zero Value is missing.
type Value struct {
	f     float64
	valid bool
}

// Number returns a present value.
func Number(f float64) Value {
	return Value{f: f, valid: true}
}

// Missing returns the missing marker.
func Missing() Value {
	return Value{}
}

// Float returns the number and whether it is present.
func (v Value) Float() (float64, bool) {
	return v.f, v.valid
}

// IsMissing reports whether v is the missing marker.
func (v Value) IsMissing() bool {
	return !v.valid
}

// String renders the value, "." for missing.
func (v Value) String() string {
	if !v.valid {
		return "."
	}
	return strconv.FormatFloat(v.f, 'g', -1, 64)
}

// MarshalJSON encodes missing as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.f)
}

// UnmarshalJSON decodes null as missing.
func (v *Value) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = Missing()
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Number(f)
	return nil
}

// Cell is a single observation of a two-way design.
type Cell struct {
	// Row is the row factor label.
	Row string `json:"row"`
	// Col is the column factor label.
	Col string `json:"col"`
	// Value is the observation, or missing.
	Value Value `json:"value"`
	// Ref is the source location of the value (an A1 cell name for
	// workbooks), empty when the source has none.
	Ref string `json:"ref,omitempty"`
}

// MissingCell locates a missing observation by its position in the table.
type MissingCell struct {
	Index int    `json:"index"`
	Row   string `json:"row"`
	Col   string `json:"col"`
}
