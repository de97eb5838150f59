// Package filters evaluates declarative field predicates against
// denormalised records.
//
// A filter is a tagged union keyed by Kind: each kind reads exactly one
// payload slot (Values, Date or Number), so malformed shapes are caught
// at the edge instead of being sniffed at evaluation time.
package filters

// Kind identifies a filter's payload shape and matching semantics
type Kind string

const (
	KindText         Kind = "text"
	KindTextarea     Kind = "textarea"
	KindEnum         Kind = "enum"
	KindMultiChoice  Kind = "multi-choice"
	KindBoolean      Kind = "boolean"
	KindYesNo        Kind = "yes-no"
	KindDate         Kind = "date"
	KindDateWithTime Kind = "date-with-time"
	KindDuration     Kind = "duration"
	KindNumber       Kind = "number"
)

// Comparator names a date or number comparison
type Comparator string

const (
	CmpBefore   Comparator = "before"
	CmpAfter    Comparator = "after"
	CmpEquals   Comparator = "equals"
	CmpLower    Comparator = "lower"
	CmpGreater  Comparator = "greater"
	CmpBetween  Comparator = "between"
	CmpUnfilled Comparator = "unfilled"
)

// Unfilled is the sentinel choice value matching absent or empty fields
const Unfilled = "Non renseigné"

// DateCondition is the payload of the date kinds
// Date is ignored when Comparator is unfilled
type DateCondition struct {
	Comparator Comparator `json:"comparator"`
	Date       string     `json:"date,omitempty"`
}

// NumberCondition is the payload of the number kind
// Number2 is only read by the between comparator
type NumberCondition struct {
	Comparator Comparator `json:"comparator"`
	Number     *float64   `json:"number,omitempty"`
	Number2    *float64   `json:"number2,omitempty"`
}

// Filter is one declarative predicate over a record field
type Filter struct {
	Field  string           `json:"field"`
	Kind   Kind             `json:"kind"`
	Values []string         `json:"values,omitempty"`
	Date   *DateCondition   `json:"date,omitempty"`
	Number *NumberCondition `json:"number,omitempty"`
}

// Active reports whether the filter carries a payload for its kind.
// Inactive filters are skipped, never failed.
func (f Filter) Active() bool {
	if f.Field == "" {
		return false
	}
	switch f.Kind {
	case KindNumber:
		return f.Number != nil
	case KindDate, KindDateWithTime, KindDuration:
		return f.Date != nil
	default:
		return len(f.Values) > 0
	}
}

// Record is a bag of field values a filter can inspect.
// Values are string, []string, bool, float64 or int; a missing key or a
// nil value reads as unfilled.
type Record map[string]any
