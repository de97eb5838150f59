// Package tally runs the statistics aggregation pipeline over
// denormalised person snapshots.
//
// One pass per person: field filters, active-list and team-exit gates,
// team-assignment reconciliation, mode classification, then sub-record
// bucketing. Relative count filters are applied two-phase: each person
// accumulates a draft of candidate contributions, the counts are tested,
// and only then is the draft committed to the result, so a late
// rejection never leaves partial contributions behind.
package tally

import (
	"caseflow/internal/core/filters"
	"caseflow/internal/core/timeline"
)

// Person is a denormalised snapshot: the person record plus its embedded
// sub-records, interaction log and field-change history. Snapshots are
// read-only inputs; the pipeline never mutates them.
type Person struct {
	ID              string                   `json:"id"`
	Name            string                   `json:"name,omitempty"`
	Gender          string                   `json:"gender,omitempty"`
	FollowedSince   string                   `json:"followed_since,omitempty"`
	OutOfActiveList bool                     `json:"out_of_active_list,omitempty"`
	Fields          filters.Record           `json:"fields,omitempty"`
	Interactions    []string                 `json:"interactions,omitempty"`
	AssignedTeams   timeline.AssignedPeriods `json:"assigned_teams,omitempty"`
	History         []timeline.HistoryEntry  `json:"history,omitempty"`
	Actions         []Action                 `json:"actions,omitempty"`
	Consultations   []Consultation           `json:"consultations,omitempty"`
	Passages        []Passage                `json:"passages,omitempty"`
	Rencontres      []Rencontre              `json:"rencontres,omitempty"`
	Treatments      []Treatment              `json:"treatments,omitempty"`
}

// Action may belong to several teams at once; Teams wins over Team when
// both are set (older snapshots only carry the scalar)
type Action struct {
	ID          string   `json:"id"`
	Team        string   `json:"team,omitempty"`
	Teams       []string `json:"teams,omitempty"`
	CompletedAt string   `json:"completed_at,omitempty"`
	DueAt       string   `json:"due_at,omitempty"`
	Status      string   `json:"status,omitempty"`
	Categories  []string `json:"categories,omitempty"`
}

func (a Action) date() string {
	if a.CompletedAt != "" {
		return a.CompletedAt
	}
	return a.DueAt
}

// Consultation mirrors Action's team and date handling
type Consultation struct {
	ID          string   `json:"id"`
	Team        string   `json:"team,omitempty"`
	Teams       []string `json:"teams,omitempty"`
	CompletedAt string   `json:"completed_at,omitempty"`
	DueAt       string   `json:"due_at,omitempty"`
	Type        string   `json:"type,omitempty"`
	Status      string   `json:"status,omitempty"`
}

func (c Consultation) date() string {
	if c.CompletedAt != "" {
		return c.CompletedAt
	}
	return c.DueAt
}

// Passage is a drop-in visit at a team's premises
type Passage struct {
	ID      string `json:"id"`
	Team    string `json:"team,omitempty"`
	Date    string `json:"date"`
	Comment string `json:"comment,omitempty"`
}

// Rencontre is a street encounter; Gender is stamped from the person
// when the rencontre is bucketed, for the gender breakdown charts
type Rencontre struct {
	ID          string       `json:"id"`
	Team        string       `json:"team,omitempty"`
	Date        string       `json:"date"`
	Comment     string       `json:"comment,omitempty"`
	Gender      string       `json:"gender,omitempty"`
	Observation *Observation `json:"observation,omitempty"`
}

// Observation links a rencontre to the territory it was recorded on
type Observation struct {
	Territory string `json:"territory,omitempty"`
}

// Treatment is a medical treatment line on the person's file
type Treatment struct {
	ID   string `json:"id"`
	Team string `json:"team,omitempty"`
	Date string `json:"date,omitempty"`
	Name string `json:"name,omitempty"`
}

// Territory is the slice of the org territory record the pipeline needs
type Territory struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Types []string `json:"types,omitempty"`
}
