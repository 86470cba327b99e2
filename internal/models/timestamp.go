package models

import (
	"bytes"
	"strings"
	"time"
)

// naiveLayouts are the forms Django emits when USE_TZ is off.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
}

// Timestamp is a server time that tolerates missing offsets. Naive values
// carry the shop's wall clock and are placed in a zone only when rendered.
// Values that cannot be parsed decode to the zero time.
type Timestamp struct {
	time.Time
	Naive bool
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	*t = Timestamp{}
	raw := strings.TrimSpace(string(bytes.Trim(data, `"`)))
	if raw == "" || raw == "null" {
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		t.Time = parsed
		return nil
	}
	for _, layout := range naiveLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			t.Naive = true
			return nil
		}
	}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return t.Time.MarshalJSON()
}

// In converts an aware time to loc and reads a naive one as wall clock in loc.
func (t Timestamp) In(loc *time.Location) time.Time {
	if !t.Naive {
		return t.Time.In(loc)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}
