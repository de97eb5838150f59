// Package timeline reconciles reporting query windows with a person's
// team-assignment intervals and active-list membership.
//
// All instants are UTC RFC3339 strings in canonical millisecond form,
// so string order is time order and intervals compare lexicographically.
// Intervals are half-open [Start, End); an empty End means open ended.
package timeline

import (
	"sort"
	"time"
)

// layoutISO matches the canonical snapshot timestamp form
// ("2006-01-02T15:04:05.000Z" for UTC)
const layoutISO = "2006-01-02T15:04:05.000Z07:00"

// Epoch is the fallback lower bound when a person has no known start date
const Epoch = "1970-01-01T00:00:00.000Z"

// Period is a half-open [Start, End) interval
// An empty End means the interval is still open
type Period struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

// Contains reports whether iso falls inside the interval
func (p Period) Contains(iso string) bool {
	if iso < p.Start {
		return false
	}
	return p.End == "" || iso < p.End
}

// ParseISO accepts RFC3339 timestamps with or without fractional seconds
// and bare YYYY-MM-DD dates, normalised to UTC
func ParseISO(s string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

// DayFloor truncates iso to the start of its UTC day in canonical form
// Unparseable input is returned unchanged
func DayFloor(iso string) string {
	t, ok := ParseISO(iso)
	if !ok {
		return iso
	}
	return t.Truncate(24 * time.Hour).Format(layoutISO)
}

// Shift moves iso by d and re-canonicalises it
// Unparseable input is returned unchanged
func Shift(iso string, d time.Duration) string {
	t, ok := ParseISO(iso)
	if !ok {
		return iso
	}
	return t.Add(d).Format(layoutISO)
}

// Canon normalises iso to canonical millisecond UTC form
func Canon(iso string) string {
	return Shift(iso, 0)
}

func sortPeriods(ps []Period) {
	sort.SliceStable(ps, func(i, j int) bool {
		if ps[i].Start != ps[j].Start {
			return ps[i].Start < ps[j].Start
		}
		return ps[i].End < ps[j].End
	})
}
