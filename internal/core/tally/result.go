package tally

// Mode selects which person classification feeds the Persons slice.
// All four counts are computed on every run regardless of the mode.
type Mode string

const (
	// ModeAll keeps every person assigned to a team in scope
	ModeAll Mode = "all"
	// ModeModified keeps persons with an interaction in the window
	ModeModified Mode = "modified"
	// ModeFollowed keeps persons with an interaction in the window that
	// also falls inside an active-list and assigned-team period
	ModeFollowed Mode = "followed"
	// ModeCreated keeps persons first followed, or first assigned to a
	// team in scope, during the window
	ModeCreated Mode = "created"
)

// Valid reports whether m names a known mode
func (m Mode) Valid() bool {
	switch m {
	case ModeAll, ModeModified, ModeFollowed, ModeCreated:
		return true
	}
	return false
}

// Filter DTO field names with pipeline-level semantics. Relative fields
// test counts derived during aggregation, the others gate on snapshot
// state; none of them reach the plain field evaluator.
const (
	FieldOutOfActiveList           = "outOfActiveList"
	FieldOutOfTeamsDuringPeriod    = "outOfTeamsDuringPeriod"
	FieldTerritories               = "territories"
	FieldStartFollowBySelectedTeam = "startFollowBySelectedTeamDuringPeriod"
	FieldHasAtLeastOneConsultation = "hasAtLeastOneConsultation"
	FieldNumberOfActions           = "numberOfActions"
	FieldNumberOfConsultations     = "numberOfConsultations"
	FieldNumberOfTreatments        = "numberOfTreatments"
	FieldNumberOfPassages          = "numberOfPassages"
	FieldNumberOfRencontres        = "numberOfRencontres"
)

// ModeCounts carries all four person classifications for one run
type ModeCounts struct {
	All      int `json:"all"`
	Modified int `json:"modified"`
	Followed int `json:"followed"`
	Created  int `json:"created"`
}

// Result is the aggregation output. Slices preserve the input order of
// persons and of each person's sub-records, so identical inputs produce
// identical results.
type Result struct {
	// Persons selected by the run's mode
	Persons []*Person `json:"persons"`
	// ModeCounts are computed for every run regardless of mode
	ModeCounts ModeCounts `json:"mode_counts"`

	PersonsUpdatedWithActions int `json:"persons_updated_with_actions"`
	FollowedWithActions       int `json:"followed_with_actions"`

	Actions []Action `json:"actions"`

	Consultations            []Consultation `json:"consultations"`
	PersonsWithConsultations int            `json:"persons_with_consultations"`

	Passages            []Passage `json:"passages"`
	PersonsWithPassages []*Person `json:"persons_with_passages"`
	// persons already followed before the window who passed by anyway
	PersonsKnownBeforePassages []*Person `json:"persons_known_before_passages"`

	Rencontres                   []Rencontre `json:"rencontres"`
	PersonsKnownBeforeRencontres []*Person   `json:"persons_known_before_rencontres"`
}
