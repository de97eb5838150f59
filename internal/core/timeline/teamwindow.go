package timeline

import "time"

// Team is the slice of the org team record the reconciler needs
type Team struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	NightSession bool   `json:"night_session"`
}

// Window is a reporting query window clipped for one team
// Empty bounds are unbounded ("no period selected")
type Window struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// Contains reports whether iso falls inside the window
func (w Window) Contains(iso string) bool {
	if w.Start != "" && iso < w.Start {
		return false
	}
	if w.End != "" && iso >= w.End {
		return false
	}
	return true
}

// WindowSet carries the per-team query windows for one stats run.
// Night-session teams get their window shifted by 12 hours so that a
// shift spanning midnight lands on the day it started.
type WindowSet struct {
	ViewAll bool
	Default Window

	windows map[string]Window
}

// NewWindowSet derives the per-team windows from the raw query period.
// Start is floored to its UTC day, end is floored then pushed one day
// so the range is end-inclusive from the caller's point of view. Empty
// startDate or endDate means no period was selected.
func NewWindowSet(startDate, endDate string, teams []Team, selected []string, viewAll bool) WindowSet {
	ws := WindowSet{ViewAll: viewAll, windows: make(map[string]Window, len(selected))}
	if startDate != "" {
		ws.Default.Start = DayFloor(startDate)
	}
	if endDate != "" {
		ws.Default.End = Shift(DayFloor(endDate), 24*time.Hour)
	}

	byID := make(map[string]Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}

	ids := selected
	if viewAll {
		ids = make([]string, 0, len(teams))
		for _, t := range teams {
			ids = append(ids, t.ID)
		}
	}

	for _, id := range ids {
		var offset time.Duration
		if byID[id].NightSession {
			offset = 12 * time.Hour
		}
		w := Window{}
		if ws.Default.Start != "" {
			w.Start = Shift(ws.Default.Start, offset)
		}
		if ws.Default.End != "" {
			w.End = Shift(ws.Default.End, offset)
		}
		ws.windows[id] = w
	}
	return ws
}

// NoPeriod reports whether the run has no bounded query window
func (ws WindowSet) NoPeriod() bool {
	return ws.Default.Start == "" || ws.Default.End == ""
}

// Selected reports whether a team is part of the query's team scope
func (ws WindowSet) Selected(teamID string) bool {
	_, ok := ws.windows[teamID]
	return ok
}

// For returns the window of one team, falling back to the default
// window for teams outside the selection
func (ws WindowSet) For(teamID string) Window {
	if w, ok := ws.windows[teamID]; ok {
		return w
	}
	return ws.Default
}

// AssignedPeriods maps team id to the person's assignment intervals for
// that team, ordered oldest first, plus an "all" aggregate key
type AssignedPeriods map[string][]Period

// AggregateKey indexes the cross-team aggregate intervals
const AggregateKey = "all"

// AssignedDuringWindow reports whether the person was assigned to a team
// in scope at any point overlapping the default query window.
//
// Persons with no per-team interval data at all pass by precaution
// (assignment was not always mandatory in historical data). When
// firstStartOnly is set, only persons whose first assignment interval
// for an in-scope team STARTS inside the window pass, which backs the
// "started follow by selected team during period" filter.
func AssignedDuringWindow(ws WindowSet, assigned AssignedPeriods, firstStartOnly bool) bool {
	if ws.ViewAll {
		return true
	}

	perTeam := false
	for id := range assigned {
		if id != AggregateKey {
			perTeam = true
			break
		}
	}
	if !perTeam {
		return true
	}

	w := ws.Default
	for id, periods := range assigned {
		if id == AggregateKey || !ws.Selected(id) {
			continue
		}
		if firstStartOnly {
			if len(periods) > 0 && w.Contains(periods[0].Start) {
				return true
			}
			continue
		}
		for _, p := range periods {
			if overlaps(p, w) {
				return true
			}
		}
	}
	return false
}

// overlaps tests a half-open assignment interval against a window
func overlaps(p Period, w Window) bool {
	if w.End != "" && p.Start >= w.End {
		return false
	}
	if w.Start != "" && p.End != "" && p.End <= w.Start {
		return false
	}
	return true
}

// InAssignedTeamPeriod reports whether iso falls inside an assignment
// interval for a team in scope. Organisation-wide queries read the
// aggregate intervals instead of per-team ones.
func InAssignedTeamPeriod(ws WindowSet, assigned AssignedPeriods, iso string) bool {
	if ws.ViewAll {
		for _, p := range assigned[AggregateKey] {
			if p.Contains(iso) {
				return true
			}
		}
		return false
	}
	for id, periods := range assigned {
		if id == AggregateKey || !ws.Selected(id) {
			continue
		}
		for _, p := range periods {
			if p.Contains(iso) {
				return true
			}
		}
	}
	return false
}

// MergedTeamPeriods clips the person's assignment intervals for teams in
// scope to their query windows. Intervals that vanish after clipping are
// dropped; a team with no interval data contributes nothing. Output is
// sorted so runs are reproducible.
func MergedTeamPeriods(ws WindowSet, assigned AssignedPeriods) []Period {
	var out []Period
	clip := func(p Period, w Window) {
		start := p.Start
		if w.Start != "" && start < w.Start {
			start = w.Start
		}
		end := p.End
		if w.End != "" && (end == "" || end > w.End) {
			end = w.End
		}
		if end != "" && start >= end {
			return
		}
		out = append(out, Period{Start: start, End: end})
	}

	if ws.ViewAll {
		for _, p := range assigned[AggregateKey] {
			clip(p, ws.Default)
		}
		sortPeriods(out)
		return out
	}

	for id, periods := range assigned {
		if id == AggregateKey || !ws.Selected(id) {
			continue
		}
		w := ws.For(id)
		for _, p := range periods {
			clip(p, w)
		}
	}
	sortPeriods(out)
	return out
}

// InActiveTeamIntersection reports whether iso falls inside the
// intersection of at least one active-list period and one team period.
// An open active end is bounded by the team period's end.
func InActiveTeamIntersection(iso string, active, team []Period) bool {
	if iso == "" || len(active) == 0 || len(team) == 0 {
		return false
	}
	for _, a := range active {
		for _, t := range team {
			start := a.Start
			if t.Start > start {
				start = t.Start
			}
			var end string
			switch {
			case a.End == "":
				end = t.End
			case t.End == "" || a.End < t.End:
				end = a.End
			default:
				end = t.End
			}
			if end != "" && start >= end {
				continue
			}
			if iso >= start && (end == "" || iso < end) {
				return true
			}
		}
	}
	return false
}
