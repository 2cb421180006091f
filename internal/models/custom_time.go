package models

import (
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// FlexibleDate is a custom time type that can unmarshal RFC3339, "YYYY-MM-DD"
// and JavaScript epoch milliseconds
type FlexibleDate struct {
	time.Time
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexibleDate) UnmarshalJSON(b []byte) error {
	raw := string(b)
	if raw == "null" {
		return nil
	}

	// Unquoted numbers are Date.now() style milliseconds
	if !strings.HasPrefix(raw, `"`) {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return err
		}
		f.Time = time.UnixMilli(ms).UTC()
		return nil
	}

	s := strings.Trim(raw, `"`)

	// Try parsing as RFC3339 full timestamp first
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		f.Time = t
		return nil
	}

	// If that fails, try parsing as a date-only string
	t, err = time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	f.Time = t
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (f FlexibleDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Time)
}
