// Package domain holds DTOs for stats http and service contracts
package domain

import (
	perr "caseflow/internal/platform/errors"

	"caseflow/internal/core/filters"
	"caseflow/internal/core/tally"
)

// Query period and team scope kept small and explicit
// Instants are ISO8601 strings, date only or full timestamps

// PeriodDTO bounds a reporting window, both ends optional
type PeriodDTO struct {
	Start string `json:"start,omitempty" validate:"omitempty,min=10,max=30" example:"2025-08-01"`
	End   string `json:"end,omitempty" validate:"omitempty,min=10,max=30" example:"2025-08-31"`
}

// DateConditionDTO is the wire payload of date filters
type DateConditionDTO struct {
	Comparator string `json:"comparator" validate:"required,oneof=before after equals unfilled" example:"before"`
	Date       string `json:"date,omitempty" validate:"omitempty,min=10,max=30" example:"2025-08-15"`
}

// NumberConditionDTO is the wire payload of number filters
type NumberConditionDTO struct {
	Comparator string   `json:"comparator" validate:"required,oneof=equals lower greater between unfilled" example:"between"`
	Number     *float64 `json:"number,omitempty"`
	Number2    *float64 `json:"number2,omitempty"`
}

// FilterDTO is one field predicate; exactly one payload slot must be
// set and it must agree with Kind
type FilterDTO struct {
	Field  string              `json:"field" validate:"required,min=1,max=200" example:"gender"`
	Kind   string              `json:"kind" validate:"required,oneof=text textarea enum multi-choice boolean yes-no date date-with-time duration number"`
	Values []string            `json:"values,omitempty" validate:"omitempty,max=100,dive,max=500"`
	Date   *DateConditionDTO   `json:"date,omitempty"`
	Number *NumberConditionDTO `json:"number,omitempty"`
}

// StatsQuery is the input of both stats endpoints
type StatsQuery struct {
	Period  PeriodDTO   `json:"period"`
	Teams   []string    `json:"teams,omitempty" validate:"omitempty,max=200,dive,min=1,max=100"`
	ViewAll bool        `json:"view_all,omitempty"`
	Mode    string      `json:"mode,omitempty" validate:"omitempty,oneof=all modified followed created"`
	Filters []FilterDTO `json:"filters,omitempty" validate:"omitempty,max=100,dive"`

	// Today overrides the run clock, mainly for reproducible reports
	Today string `json:"today,omitempty" validate:"omitempty,rfc3339"`
}

// TallyMode resolves the wire mode, defaulting to all
func (q StatsQuery) TallyMode() tally.Mode {
	if q.Mode == "" {
		return tally.ModeAll
	}
	return tally.Mode(q.Mode)
}

// CoreFilter converts one DTO, rejecting payloads that disagree with
// the declared kind
func (f FilterDTO) CoreFilter() (filters.Filter, error) {
	out := filters.Filter{Field: f.Field, Kind: filters.Kind(f.Kind)}

	switch out.Kind {
	case filters.KindNumber:
		if f.Number == nil {
			return out, perr.Validationf("filter %q: kind %s needs a number condition", f.Field, f.Kind)
		}
		if f.Date != nil || len(f.Values) > 0 {
			return out, perr.Validationf("filter %q: kind %s takes only a number condition", f.Field, f.Kind)
		}
		out.Number = &filters.NumberCondition{
			Comparator: filters.Comparator(f.Number.Comparator),
			Number:     f.Number.Number,
			Number2:    f.Number.Number2,
		}
		switch out.Number.Comparator {
		case filters.CmpEquals, filters.CmpLower, filters.CmpGreater, filters.CmpBetween, filters.CmpUnfilled:
		default:
			return out, perr.Validationf("filter %q: unknown number comparator %q", f.Field, f.Number.Comparator)
		}
	case filters.KindDate, filters.KindDateWithTime, filters.KindDuration:
		if f.Date == nil {
			return out, perr.Validationf("filter %q: kind %s needs a date condition", f.Field, f.Kind)
		}
		if f.Number != nil || len(f.Values) > 0 {
			return out, perr.Validationf("filter %q: kind %s takes only a date condition", f.Field, f.Kind)
		}
		out.Date = &filters.DateCondition{
			Comparator: filters.Comparator(f.Date.Comparator),
			Date:       f.Date.Date,
		}
		switch out.Date.Comparator {
		case filters.CmpBefore, filters.CmpAfter, filters.CmpEquals, filters.CmpUnfilled:
		default:
			return out, perr.Validationf("filter %q: unknown date comparator %q", f.Field, f.Date.Comparator)
		}
	default:
		if f.Date != nil || f.Number != nil {
			return out, perr.Validationf("filter %q: kind %s takes only values", f.Field, f.Kind)
		}
		if len(f.Values) == 0 {
			return out, perr.Validationf("filter %q: kind %s needs at least one value", f.Field, f.Kind)
		}
		out.Values = f.Values
	}
	return out, nil
}

// CoreFilters converts the whole filter list
func (q StatsQuery) CoreFilters() ([]filters.Filter, error) {
	if len(q.Filters) == 0 {
		return nil, nil
	}
	out := make([]filters.Filter, 0, len(q.Filters))
	for _, f := range q.Filters {
		cf, err := f.CoreFilter()
		if err != nil {
			return nil, err
		}
		out = append(out, cf)
	}
	return out, nil
}

// PersonSummary is the slim person row the persons endpoint returns
type PersonSummary struct {
	ID              string `json:"id"`
	Name            string `json:"name,omitempty"`
	Gender          string `json:"gender,omitempty"`
	FollowedSince   string `json:"followed_since,omitempty"`
	OutOfActiveList bool   `json:"out_of_active_list,omitempty"`
}

// PersonsOut is the persons endpoint payload
type PersonsOut struct {
	Mode       string           `json:"mode"`
	ModeCounts tally.ModeCounts `json:"mode_counts"`
	Persons    []PersonSummary  `json:"persons"`
}

// ReportOut wraps a full aggregation run with report identity
type ReportOut struct {
	ID          string    `json:"id"`
	GeneratedAt string    `json:"generated_at"`
	Period      PeriodDTO `json:"period"`
	Teams       []string  `json:"teams,omitempty"`
	ViewAll     bool      `json:"view_all,omitempty"`
	Mode        string    `json:"mode"`

	Result *tally.Result `json:"result"`
}
