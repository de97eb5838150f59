// Package domain holds DTOs for persons http and service contracts
package domain

import (
	"caseflow/internal/core/timeline"
	statsdomain "caseflow/internal/services/api/stats/domain"
)

// TimelineInput identifies one person file
type TimelineInput struct {
	PersonID string `json:"person_id" validate:"required,min=1,max=100"`

	// Today bounds the open out-of-active-list period when overridden
	Today string `json:"today,omitempty" validate:"omitempty,rfc3339"`
}

// TimelineOut reconciles a person's follow-up history into periods
type TimelineOut struct {
	PersonID        string `json:"person_id"`
	Name            string `json:"name,omitempty"`
	FollowedSince   string `json:"followed_since,omitempty"`
	OutOfActiveList bool   `json:"out_of_active_list"`

	ActivePeriods      []timeline.Period `json:"active_periods"`
	OutOfActivePeriods []timeline.Period `json:"out_of_active_periods"`
}

// SearchInput selects persons by field filters, optionally narrowed to
// those actually followed during the window
type SearchInput struct {
	Period  statsdomain.PeriodDTO   `json:"period"`
	Teams   []string                `json:"teams,omitempty" validate:"omitempty,max=200,dive,min=1,max=100"`
	ViewAll bool                    `json:"view_all,omitempty"`
	Filters []statsdomain.FilterDTO `json:"filters,omitempty" validate:"omitempty,max=100,dive"`

	// OnlyFollowed keeps persons with an interaction falling inside
	// both an active-list period and an assigned team period
	OnlyFollowed bool `json:"only_followed,omitempty"`

	Today string `json:"today,omitempty" validate:"omitempty,rfc3339"`
}

// SearchOut is the search payload
type SearchOut struct {
	Total   int                         `json:"total"`
	Persons []statsdomain.PersonSummary `json:"persons"`
}
