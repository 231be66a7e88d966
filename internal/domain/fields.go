package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"time"
)

// FieldType is the input type of a form field.
type FieldType string

const (
	FieldText    FieldType = "text"
	FieldNumber  FieldType = "number"
	FieldBoolean FieldType = "boolean"
	FieldSelect  FieldType = "select"
	FieldDate    FieldType = "date"
)

// FieldDef describes one input of a form definition.
// For number fields, a value outside [Min, Max] is a deviation; with HardLimit
// set it is rejected outright.
type FieldDef struct {
	Name      string    `json:"name"`
	Label     string    `json:"label"`
	Type      FieldType `json:"type"`
	Required  bool      `json:"required,omitempty"`
	Min       *float64  `json:"min,omitempty"`
	Max       *float64  `json:"max,omitempty"`
	HardLimit bool      `json:"hard_limit,omitempty"`
	Unit      string    `json:"unit,omitempty"`
	Options   []string  `json:"options,omitempty"`
	MaxLength int       `json:"max_length,omitempty"`
}

var fieldName = regexp.MustCompile(`^[a-z][a-z0-9_]{0,62}$`)

// ParseFields decodes and validates a field schema. An empty schema is valid.
func ParseFields(raw json.RawMessage) ([]FieldDef, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var defs []FieldDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFieldSchema, err)
	}
	seen := make(map[string]bool, len(defs))
	for _, d := range defs {
		if !fieldName.MatchString(d.Name) {
			return nil, fmt.Errorf("%w: invalid field name %q", ErrInvalidFieldSchema, d.Name)
		}
		if seen[d.Name] {
			return nil, fmt.Errorf("%w: duplicate field %q", ErrInvalidFieldSchema, d.Name)
		}
		seen[d.Name] = true
		switch d.Type {
		case FieldText, FieldBoolean, FieldDate:
		case FieldNumber:
			if d.Min != nil && d.Max != nil && *d.Min > *d.Max {
				return nil, fmt.Errorf("%w: %s has min greater than max", ErrInvalidFieldSchema, d.Name)
			}
		case FieldSelect:
			if len(d.Options) == 0 {
				return nil, fmt.Errorf("%w: select field %s needs options", ErrInvalidFieldSchema, d.Name)
			}
		default:
			return nil, fmt.Errorf("%w: %s has unknown type %q", ErrInvalidFieldSchema, d.Name, d.Type)
		}
	}
	return defs, nil
}

// EntryCheck is the outcome of validating an entry payload.
type EntryCheck struct {
	// Deviations lists fields whose values are outside their soft limits.
	Deviations []string
}

// ValidateEntryData checks an entry payload against the field schema.
// Without fields, any JSON object is accepted.
func ValidateEntryData(defs []FieldDef, data json.RawMessage) (*EntryCheck, error) {
	var values map[string]json.RawMessage
	if err := json.Unmarshal(data, &values); err != nil || values == nil {
		return nil, fmt.Errorf("%w: payload must be a JSON object", ErrInvalidEntryData)
	}
	check := &EntryCheck{}
	if len(defs) == 0 {
		return check, nil
	}

	known := make(map[string]bool, len(defs))
	for _, d := range defs {
		known[d.Name] = true
		v, present := values[d.Name]
		if !present || isNull(v) {
			if d.Required {
				return nil, fmt.Errorf("%w: %s is required", ErrInvalidEntryData, d.Name)
			}
			continue
		}
		deviation, err := checkValue(d, v)
		if err != nil {
			return nil, err
		}
		if deviation {
			check.Deviations = append(check.Deviations, d.Name)
		}
	}
	for k := range values {
		if !known[k] {
			return nil, fmt.Errorf("%w: unknown field %s", ErrInvalidEntryData, k)
		}
	}
	return check, nil
}

func checkValue(d FieldDef, v json.RawMessage) (deviation bool, err error) {
	bad := func(want string) error {
		return fmt.Errorf("%w: %s must be %s", ErrInvalidEntryData, d.Name, want)
	}
	switch d.Type {
	case FieldText:
		var s string
		if json.Unmarshal(v, &s) != nil {
			return false, bad("a string")
		}
		if d.Required && s == "" {
			return false, fmt.Errorf("%w: %s is required", ErrInvalidEntryData, d.Name)
		}
		if d.MaxLength > 0 && len([]rune(s)) > d.MaxLength {
			return false, bad(fmt.Sprintf("at most %d characters", d.MaxLength))
		}
	case FieldNumber:
		var n float64
		if json.Unmarshal(v, &n) != nil {
			return false, bad("a number")
		}
		out := (d.Min != nil && n < *d.Min) || (d.Max != nil && n > *d.Max)
		if out && d.HardLimit {
			return false, bad("within its allowed range")
		}
		return out, nil
	case FieldBoolean:
		var b bool
		if json.Unmarshal(v, &b) != nil {
			return false, bad("true or false")
		}
	case FieldSelect:
		var s string
		if json.Unmarshal(v, &s) != nil {
			return false, bad("one of the options")
		}
		for _, o := range d.Options {
			if o == s {
				return false, nil
			}
		}
		return false, bad("one of the options")
	case FieldDate:
		var s string
		if json.Unmarshal(v, &s) != nil {
			return false, bad("a date (YYYY-MM-DD)")
		}
		if _, err := time.Parse("2006-01-02", s); err != nil {
			return false, bad("a date (YYYY-MM-DD)")
		}
	}
	return false, nil
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}
