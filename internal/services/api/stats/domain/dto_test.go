package domain

import (
	"testing"

	perr "caseflow/internal/platform/errors"

	"caseflow/internal/core/filters"
	"caseflow/internal/core/tally"
)

func fptr(f float64) *float64 { return &f }

func TestCoreFilterPayloadAgreement(t *testing.T) {
	cases := []struct {
		name    string
		in      FilterDTO
		wantErr bool
	}{
		{
			name: "enum with values",
			in:   FilterDTO{Field: "gender", Kind: "enum", Values: []string{"Femme"}},
		},
		{
			name: "number with condition",
			in:   FilterDTO{Field: "age", Kind: "number", Number: &NumberConditionDTO{Comparator: "between", Number: fptr(18), Number2: fptr(25)}},
		},
		{
			name: "date with condition",
			in:   FilterDTO{Field: "arrival", Kind: "date", Date: &DateConditionDTO{Comparator: "before", Date: "2024-01-01"}},
		},
		{
			name:    "number without condition",
			in:      FilterDTO{Field: "age", Kind: "number"},
			wantErr: true,
		},
		{
			name:    "number with stray values",
			in:      FilterDTO{Field: "age", Kind: "number", Values: []string{"18"}, Number: &NumberConditionDTO{Comparator: "equals", Number: fptr(18)}},
			wantErr: true,
		},
		{
			name:    "date without condition",
			in:      FilterDTO{Field: "arrival", Kind: "date"},
			wantErr: true,
		},
		{
			name:    "date with stray number",
			in:      FilterDTO{Field: "arrival", Kind: "date", Date: &DateConditionDTO{Comparator: "equals", Date: "2024-01-01"}, Number: &NumberConditionDTO{Comparator: "equals"}},
			wantErr: true,
		},
		{
			name:    "enum without values",
			in:      FilterDTO{Field: "gender", Kind: "enum"},
			wantErr: true,
		},
		{
			name:    "enum with stray date",
			in:      FilterDTO{Field: "gender", Kind: "enum", Values: []string{"Femme"}, Date: &DateConditionDTO{Comparator: "equals"}},
			wantErr: true,
		},
		{
			name:    "unknown number comparator",
			in:      FilterDTO{Field: "age", Kind: "number", Number: &NumberConditionDTO{Comparator: "within", Number: fptr(1)}},
			wantErr: true,
		},
		{
			name:    "unknown date comparator",
			in:      FilterDTO{Field: "arrival", Kind: "date", Date: &DateConditionDTO{Comparator: "since", Date: "2024-01-01"}},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.in.CoreFilter()
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %#v", got)
				}
				if !perr.IsCode(err, perr.ErrorCodeValidation) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Field != tc.in.Field || string(got.Kind) != tc.in.Kind {
				t.Fatalf("field or kind lost in conversion: %#v", got)
			}
			if !got.Active() {
				t.Fatalf("converted filter should be active: %#v", got)
			}
		})
	}
}

func TestCoreFilterBetweenKeepsBothBounds(t *testing.T) {
	in := FilterDTO{Field: "age", Kind: "number", Number: &NumberConditionDTO{Comparator: "between", Number: fptr(30), Number2: fptr(20)}}
	got, err := in.CoreFilter()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Number == nil || got.Number.Comparator != filters.CmpBetween {
		t.Fatalf("number payload not carried: %#v", got)
	}
	if *got.Number.Number != 30 || *got.Number.Number2 != 20 {
		t.Fatalf("bounds not carried: %#v", got.Number)
	}
}

func TestTallyModeDefaultsToAll(t *testing.T) {
	if got := (StatsQuery{}).TallyMode(); got != tally.ModeAll {
		t.Fatalf("want all got %s", got)
	}
	if got := (StatsQuery{Mode: "followed"}).TallyMode(); got != tally.ModeFollowed {
		t.Fatalf("want followed got %s", got)
	}
}

func TestCoreFiltersStopsOnFirstBadFilter(t *testing.T) {
	q := StatsQuery{Filters: []FilterDTO{
		{Field: "gender", Kind: "enum", Values: []string{"Homme"}},
		{Field: "age", Kind: "number"},
	}}
	if _, err := q.CoreFilters(); err == nil {
		t.Fatal("expected error from the bad filter")
	}
}
