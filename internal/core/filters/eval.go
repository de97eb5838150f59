package filters

import (
	"math"
	"slices"
	"strings"
	"time"

	"caseflow/internal/core/textfold"
)

// Evaluate reports whether rec satisfies every active filter.
// AND across filters, OR across the values of one multi-value filter.
// An empty filter list passes everything.
func Evaluate(fs []Filter, rec Record) bool {
	for _, f := range fs {
		if !f.Active() {
			continue
		}
		if !match(f, rec) {
			return false
		}
	}
	return true
}

// match dispatches on the filter kind. Fails closed: a filter pointing
// at a field the record does not carry rejects, unless the comparator
// explicitly tests for absence.
func match(f Filter, rec Record) bool {
	v := rec[f.Field]

	switch f.Kind {
	case KindNumber:
		return matchNumber(*f.Number, v)
	case KindDate, KindDateWithTime, KindDuration:
		return matchDate(*f.Date, v)
	case KindBoolean:
		return matchBoolean(f.Values, v)
	case KindYesNo:
		return matchYesNo(f.Values, v)
	case KindText, KindTextarea:
		return matchChoice(f.Values, v, true)
	case KindEnum, KindMultiChoice:
		return matchChoice(f.Values, v, false)
	default:
		// unknown kind is a logically inconsistent filter
		return false
	}
}

func matchNumber(c NumberCondition, v any) bool {
	n, filled := asNumber(v)

	if c.Comparator == CmpUnfilled {
		return !filled
	}
	if !filled || c.Number == nil {
		return false
	}

	switch c.Comparator {
	case CmpBetween:
		if c.Number2 == nil {
			return false
		}
		lo, hi := *c.Number, *c.Number2
		if hi < lo {
			lo, hi = hi, lo
		}
		return n >= lo && n <= hi
	case CmpEquals:
		return n == *c.Number
	case CmpLower:
		return n < *c.Number
	case CmpGreater:
		return n > *c.Number
	default:
		return false
	}
}

func matchDate(c DateCondition, v any) bool {
	s, _ := v.(string)

	if c.Comparator == CmpUnfilled {
		return s == ""
	}
	if s == "" {
		return false
	}

	item, ok := parseDate(s)
	if !ok {
		return false
	}
	ref, ok := parseDate(c.Date)
	if !ok {
		return false
	}

	switch c.Comparator {
	case CmpBefore:
		return item.Before(ref)
	case CmpAfter:
		return item.After(ref)
	case CmpEquals:
		y1, m1, d1 := item.Date()
		y2, m2, d2 := ref.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	default:
		return false
	}
}

func matchBoolean(values []string, v any) bool {
	for _, val := range values {
		switch val {
		case "Oui":
			if truthy(v) {
				return true
			}
		case "Non":
			if !truthy(v) {
				return true
			}
		}
	}
	return false
}

// matchYesNo handles bool-backed record values. An explicit false is a
// "Non", only a missing value reads as not filled in.
func matchYesNo(values []string, v any) bool {
	b, isBool := v.(bool)
	for _, val := range values {
		switch val {
		case "Oui":
			if isBool && b {
				return true
			}
		case "Non":
			if isBool && !b {
				return true
			}
		case Unfilled:
			if v == nil {
				return true
			}
		}
	}
	return false
}

// matchChoice covers the enum, multi-choice and free-text kinds.
// Free text compares folded substrings, choices compare exact values.
func matchChoice(values []string, v any, freeText bool) bool {
	for _, val := range values {
		if val == Unfilled {
			if unfilled(v) {
				return true
			}
			continue
		}
		switch item := v.(type) {
		case string:
			if freeText {
				if textfold.ContainsFold(item, val) {
					return true
				}
			}
			if item == val {
				return true
			}
		case []string:
			if slices.Contains(item, val) {
				return true
			}
		case []any:
			// json-decoded documents carry arrays as []any
			for _, el := range item {
				if s, ok := el.(string); ok && s == val {
					return true
				}
			}
		}
	}
	return false
}

func unfilled(v any) bool {
	switch item := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(item) == ""
	case []string:
		return len(item) == 0
	case []any:
		return len(item) == 0
	default:
		return false
	}
}

func truthy(v any) bool {
	switch item := v.(type) {
	case bool:
		return item
	case string:
		return item != ""
	case float64:
		return item != 0
	case int:
		return item != 0
	default:
		return false
	}
}

func asNumber(v any) (float64, bool) {
	switch item := v.(type) {
	case float64:
		if math.IsNaN(item) {
			return 0, false
		}
		return item, true
	case int:
		return float64(item), true
	default:
		return 0, false
	}
}

func parseDate(s string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}
