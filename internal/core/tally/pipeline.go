package tally

import (
	"slices"

	"caseflow/internal/core/filters"
	"caseflow/internal/core/timeline"
)

// Params are the inputs of one aggregation run
type Params struct {
	Persons     []*Person
	Filters     []filters.Filter
	Windows     timeline.WindowSet
	Teams       []timeline.Team
	Territories []Territory
	Mode        Mode

	// Today bounds the open out-of-active-list period; injecting it
	// keeps runs reproducible
	Today string

	// Trace receives per-stage person counts when set
	Trace func(stage string, count int)
}

// run is the split of the filter list by pipeline role
type run struct {
	Params

	active      []filters.Filter // plain field filters
	outOfList   string           // "Oui", "Non" or ""
	startFollow bool

	relTreatments []filters.Filter
	relActions    []filters.Filter
	relConsults   []filters.Filter
	relHasConsult []filters.Filter
	relPassages   []filters.Filter
	relRencontres []filters.Filter

	outTeamIDs  map[string]bool // nil when the filter is absent
	terrIDs     map[string]bool // nil when the filter is absent
	noTerritory bool

	noPeriod bool
}

// draft holds one person's candidate contributions until every relative
// filter has passed
type draft struct {
	person    *Person
	include   bool
	retracted bool

	modeCountsPending modeCountsPending

	actions       []Action
	withActions   bool
	consultations []Consultation
	passages      []Passage
	rencontres    []Rencontre

	withConsultations bool
	withPassages      bool
	knownBeforePass   bool
	knownBeforeRenc   bool
}

// Compute runs the pipeline. It performs no I/O, never mutates its
// inputs and treats missing optional data as empty.
func Compute(params Params) *Result {
	r := newRun(params)
	res := &Result{}

	scanned, committed := 0, 0
	for _, person := range params.Persons {
		scanned++
		d, ok := r.evaluate(person)
		if !ok {
			continue
		}
		committed++
		r.commit(res, d)
	}

	if params.Trace != nil {
		params.Trace("scanned", scanned)
		params.Trace("committed", committed)
	}
	return res
}

func newRun(params Params) *run {
	r := &run{Params: params, noPeriod: params.Windows.NoPeriod()}

	var outTeamNames, terrNames []string
	for _, f := range params.Filters {
		switch f.Field {
		case FieldOutOfActiveList:
			if len(f.Values) > 0 {
				r.outOfList = f.Values[0]
			}
		case FieldOutOfTeamsDuringPeriod:
			outTeamNames = append(outTeamNames, f.Values...)
		case FieldTerritories:
			terrNames = append(terrNames, f.Values...)
		case FieldStartFollowBySelectedTeam:
			if slices.Contains(f.Values, "Oui") {
				r.startFollow = true
			}
		case FieldNumberOfTreatments:
			r.relTreatments = append(r.relTreatments, f)
		case FieldNumberOfActions:
			r.relActions = append(r.relActions, f)
		case FieldNumberOfConsultations:
			r.relConsults = append(r.relConsults, f)
		case FieldHasAtLeastOneConsultation:
			r.relHasConsult = append(r.relHasConsult, f)
		case FieldNumberOfPassages:
			r.relPassages = append(r.relPassages, f)
		case FieldNumberOfRencontres:
			r.relRencontres = append(r.relRencontres, f)
		default:
			if f.Active() {
				r.active = append(r.active, f)
			}
		}
	}

	// the UI authors these filters by name, the snapshots carry ids
	if len(outTeamNames) > 0 {
		r.outTeamIDs = make(map[string]bool)
		for _, t := range params.Teams {
			if slices.Contains(outTeamNames, t.Name) {
				r.outTeamIDs[t.ID] = true
			}
		}
	}
	if len(terrNames) > 0 {
		r.terrIDs = make(map[string]bool)
		r.noTerritory = slices.Contains(terrNames, filters.Unfilled)
		for _, t := range params.Territories {
			if slices.Contains(terrNames, t.Name) {
				r.terrIDs[t.ID] = true
			}
		}
	}
	return r
}

// evaluate runs every gate and bucket for one person and returns the
// draft to commit. A false return means the person contributes nothing.
// Mode counts are tallied here because they are observations about the
// population, not retractable bucket contributions.
func (r *run) evaluate(person *Person) (draft, bool) {
	d := draft{person: person}
	ws := r.Windows

	if !filters.Evaluate(r.active, person.Fields) {
		return d, false
	}
	if r.outOfList == "Oui" && !person.OutOfActiveList {
		return d, false
	}
	if r.outTeamIDs != nil && !r.leftSelectedTeam(person) {
		return d, false
	}
	if r.outOfList == "Non" && person.OutOfActiveList {
		return d, false
	}

	if len(r.relTreatments) > 0 {
		n := 0
		for _, tr := range person.Treatments {
			if r.noPeriod || ws.For(tr.Team).Contains(tr.Date) {
				n++
			}
		}
		if !filters.Evaluate(r.relTreatments, filters.Record{FieldNumberOfTreatments: float64(n)}) {
			return d, false
		}
	}

	if r.terrIDs != nil && !r.metInTerritory(person) {
		return d, false
	}

	assigned := timeline.AssignedDuringWindow(ws, person.AssignedTeams, r.startFollow)

	var isModified, isFollowed, isCreated bool
	if assigned {
		isModified = r.classifyModified(person)
		isFollowed = r.classifyFollowed(person)
		isCreated = r.classifyCreated(person)
		d.include = r.selectedByMode(isModified, isFollowed, isCreated)
	}

	// Sub-record bucketing runs even for unassigned persons: their
	// actions still count in the activity breakdowns.
	nActions := r.bucketActions(&d)
	followedWithActions := isFollowed && nActions > 0

	if len(r.relActions) > 0 &&
		!filters.Evaluate(r.relActions, filters.Record{FieldNumberOfActions: float64(nActions)}) {
		return r.retracted(d, assigned, isModified, isFollowed, isCreated, followedWithActions)
	}

	nConsults := r.bucketConsultations(&d)
	if len(r.relConsults) > 0 &&
		!filters.Evaluate(r.relConsults, filters.Record{FieldNumberOfConsultations: float64(nConsults)}) {
		return r.retracted(d, assigned, isModified, isFollowed, isCreated, followedWithActions)
	}
	if len(r.relHasConsult) > 0 &&
		!filters.Evaluate(r.relHasConsult, filters.Record{FieldHasAtLeastOneConsultation: nConsults > 0}) {
		return r.retracted(d, assigned, isModified, isFollowed, isCreated, followedWithActions)
	}

	nPassages := r.bucketPassages(&d)
	if len(r.relPassages) > 0 &&
		!filters.Evaluate(r.relPassages, filters.Record{FieldNumberOfPassages: float64(nPassages)}) {
		return r.retracted(d, assigned, isModified, isFollowed, isCreated, followedWithActions)
	}

	nRencontres := r.bucketRencontres(&d)
	if len(r.relRencontres) > 0 &&
		!filters.Evaluate(r.relRencontres, filters.Record{FieldNumberOfRencontres: float64(nRencontres)}) {
		return r.retracted(d, assigned, isModified, isFollowed, isCreated, followedWithActions)
	}

	d.modeCountsPending = modeCountsPending{assigned, isModified, isFollowed, isCreated, followedWithActions}
	return d, true
}

// leftSelectedTeam reports whether the person's history records an exit
// from one of the filtered teams inside the window
func (r *run) leftSelectedTeam(person *Person) bool {
	for _, h := range person.History {
		if !r.noPeriod && !r.Windows.Default.Contains(h.Date) {
			continue
		}
		for _, info := range h.Data.OutOfTeams {
			if r.outTeamIDs[info.Team] {
				return true
			}
		}
	}
	return false
}

// metInTerritory reports whether the person has a rencontre in one of
// the filtered territories inside the window
func (r *run) metInTerritory(person *Person) bool {
	for _, enc := range person.Rencontres {
		tid := ""
		if enc.Observation != nil {
			tid = enc.Observation.Territory
		}
		if tid == "" {
			if !r.noTerritory {
				continue
			}
		} else if !r.terrIDs[tid] {
			continue
		}
		if r.noPeriod || r.Windows.For(enc.Team).Contains(enc.Date) {
			return true
		}
	}
	return false
}

func (r *run) classifyModified(person *Person) bool {
	if r.noPeriod {
		return true
	}
	for _, date := range person.Interactions {
		if r.Windows.Default.Contains(date) {
			return true
		}
	}
	return false
}

// classifyFollowed requires an interaction inside an active
// assigned-team stretch. Creation inside the window alone does not
// qualify, so followed membership stays a subset of modified.
func (r *run) classifyFollowed(person *Person) bool {
	if r.noPeriod {
		return true
	}
	outPeriods := timeline.OutOfActivePeriods(person.FollowedSince, person.OutOfActiveList, person.History, r.Today)
	for _, date := range person.Interactions {
		if !r.Windows.Default.Contains(date) {
			continue
		}
		day := timeline.DayFloor(date)
		if timeline.InOutOfActivePeriod(day, outPeriods) {
			continue
		}
		if !timeline.InAssignedTeamPeriod(r.Windows, person.AssignedTeams, day) {
			continue
		}
		return true
	}
	return false
}

func (r *run) classifyCreated(person *Person) bool {
	if r.noPeriod {
		return true
	}
	if r.Windows.Default.Contains(person.FollowedSince) {
		return true
	}
	for id, periods := range person.AssignedTeams {
		if id == timeline.AggregateKey {
			continue
		}
		if !r.Windows.ViewAll && !r.Windows.Selected(id) {
			continue
		}
		if len(periods) > 0 && r.Windows.Default.Contains(periods[0].Start) {
			return true
		}
	}
	return false
}

func (r *run) selectedByMode(isModified, isFollowed, isCreated bool) bool {
	switch r.Mode {
	case ModeModified:
		return isModified
	case ModeFollowed:
		return isFollowed
	case ModeCreated:
		return isCreated
	default:
		return true
	}
}

// inTeamScope mirrors the sub-record team check: the array form wins
// when present, the scalar applies only when the array is empty
func (r *run) inTeamScope(team string, teams []string) bool {
	if r.Windows.ViewAll {
		return true
	}
	if len(teams) > 0 {
		for _, t := range teams {
			if r.Windows.Selected(t) {
				return true
			}
		}
		return false
	}
	return r.Windows.Selected(team)
}

// inWindow tests a dated sub-record against its team window, with the
// multi-team OR for records carrying a team array
func (r *run) inWindow(date, team string, teams []string) bool {
	if len(teams) > 0 {
		for _, t := range teams {
			if r.Windows.For(t).Contains(date) {
				return true
			}
		}
		return false
	}
	return r.Windows.For(team).Contains(date)
}

func (r *run) bucketActions(d *draft) int {
	n := 0
	for _, a := range d.person.Actions {
		if !r.inTeamScope(a.Team, a.Teams) {
			continue
		}
		if !r.noPeriod && !r.inWindow(a.date(), a.Team, a.Teams) {
			continue
		}
		n++
		d.actions = append(d.actions, a)
		if d.include {
			d.withActions = true
		}
	}
	return n
}

func (r *run) bucketConsultations(d *draft) int {
	n := 0
	for _, c := range d.person.Consultations {
		if !r.inTeamScope(c.Team, c.Teams) {
			continue
		}
		if !r.noPeriod && !r.inWindow(c.date(), c.Team, c.Teams) {
			continue
		}
		n++
		d.consultations = append(d.consultations, c)
		d.withConsultations = true
	}
	return n
}

func (r *run) bucketPassages(d *draft) int {
	n := 0
	for _, p := range d.person.Passages {
		if !r.inTeamScope(p.Team, nil) {
			continue
		}
		if !r.noPeriod {
			w := r.Windows.For(p.Team)
			if !w.Contains(p.Date) {
				continue
			}
			if w.Start != "" && d.person.FollowedSince != "" && d.person.FollowedSince < w.Start {
				d.knownBeforePass = true
			}
		}
		n++
		d.passages = append(d.passages, p)
		d.withPassages = true
	}
	return n
}

func (r *run) bucketRencontres(d *draft) int {
	n := 0
	for _, enc := range d.person.Rencontres {
		if !r.inTeamScope(enc.Team, nil) {
			continue
		}
		if !r.noPeriod {
			w := r.Windows.For(enc.Team)
			if !w.Contains(enc.Date) {
				continue
			}
			if w.Start != "" && d.person.FollowedSince != "" && d.person.FollowedSince < w.Start {
				d.knownBeforeRenc = true
			}
		}
		n++
		enc.Gender = d.person.Gender
		d.rencontres = append(d.rencontres, enc)
	}
	return n
}

// modeCountsPending carries the population observations of one person
// into commit. They are tallied even when buckets are retracted, since
// a relative count filter narrows the report, not the population.
type modeCountsPending struct {
	assigned            bool
	modified            bool
	followed            bool
	created             bool
	followedWithActions bool
}

// retracted drops every bucket contribution but keeps the population
// counts, which is what a relative filter rejection means
func (r *run) retracted(d draft, assigned, isModified, isFollowed, isCreated, followedWithActions bool) (draft, bool) {
	return draft{
		person:            d.person,
		modeCountsPending: modeCountsPending{assigned, isModified, isFollowed, isCreated, followedWithActions},
		retracted:         true,
	}, true
}

func (r *run) commit(res *Result, d draft) {
	mc := d.modeCountsPending
	if mc.assigned {
		res.ModeCounts.All++
		if mc.modified {
			res.ModeCounts.Modified++
		}
		if mc.followed {
			res.ModeCounts.Followed++
		}
		if mc.created {
			res.ModeCounts.Created++
		}
	}
	if mc.followedWithActions {
		res.FollowedWithActions++
	}
	if d.retracted {
		return
	}

	if d.include {
		res.Persons = append(res.Persons, d.person)
	}
	if d.withActions {
		res.PersonsUpdatedWithActions++
	}
	res.Actions = append(res.Actions, d.actions...)

	res.Consultations = append(res.Consultations, d.consultations...)
	if d.withConsultations {
		res.PersonsWithConsultations++
	}

	res.Passages = append(res.Passages, d.passages...)
	if d.withPassages {
		res.PersonsWithPassages = append(res.PersonsWithPassages, d.person)
	}
	if d.knownBeforePass {
		res.PersonsKnownBeforePassages = append(res.PersonsKnownBeforePassages, d.person)
	}

	res.Rencontres = append(res.Rencontres, d.rencontres...)
	if d.knownBeforeRenc {
		res.PersonsKnownBeforeRencontres = append(res.PersonsKnownBeforeRencontres, d.person)
	}
}
