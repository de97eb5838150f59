// Package service contains persons workflows
package service

import (
	"context"
	"time"

	"caseflow/internal/modkit/repokit"
	perr "caseflow/internal/platform/errors"
	pnet "caseflow/internal/platform/net"

	"caseflow/internal/core/filters"
	"caseflow/internal/core/tally"
	"caseflow/internal/core/timeline"
	"caseflow/internal/services/api/persons/domain"
	"caseflow/internal/services/api/persons/repo"
	statsdomain "caseflow/internal/services/api/stats/domain"
)

// Service defines the persons service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the persons service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New constructs a persons service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("persons.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("persons.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db}
}

// Timeline reconciles one person's follow-up history into periods
func (s *Svc) Timeline(ctx context.Context, in domain.TimelineInput) (domain.TimelineOut, error) {
	orgID := pnet.OrgID(ctx)
	if orgID == "" {
		return domain.TimelineOut{}, perr.Unauthorizedf("missing organisation")
	}
	p, err := s.Repo.Person(ctx, orgID, in.PersonID)
	if err != nil {
		return domain.TimelineOut{}, err
	}

	today := in.Today
	if today == "" {
		today = timeline.Canon(time.Now().UTC().Format(time.RFC3339))
	} else {
		today = timeline.Canon(today)
	}

	return domain.TimelineOut{
		PersonID:           p.ID,
		Name:               p.Name,
		FollowedSince:      p.FollowedSince,
		OutOfActiveList:    p.OutOfActiveList,
		ActivePeriods:      timeline.ActivePeriods(p.FollowedSince, p.OutOfActiveList, p.History),
		OutOfActivePeriods: timeline.OutOfActivePeriods(p.FollowedSince, p.OutOfActiveList, p.History, today),
	}, nil
}

// Search selects persons by field filters, optionally keeping only
// persons with an interaction inside both an active-list period and an
// assigned team period of the window
func (s *Svc) Search(ctx context.Context, in domain.SearchInput) (domain.SearchOut, error) {
	orgID := pnet.OrgID(ctx)
	if orgID == "" {
		return domain.SearchOut{}, perr.Unauthorizedf("missing organisation")
	}
	if in.Period.Start != "" {
		if _, ok := timeline.ParseISO(in.Period.Start); !ok {
			return domain.SearchOut{}, perr.Validationf("period start %q is not a date", in.Period.Start)
		}
	}
	if in.Period.End != "" {
		if _, ok := timeline.ParseISO(in.Period.End); !ok {
			return domain.SearchOut{}, perr.Validationf("period end %q is not a date", in.Period.End)
		}
	}

	fs := make([]filters.Filter, 0, len(in.Filters))
	for _, f := range in.Filters {
		cf, err := f.CoreFilter()
		if err != nil {
			return domain.SearchOut{}, err
		}
		fs = append(fs, cf)
	}

	teams, err := s.Repo.Teams(ctx, orgID)
	if err != nil {
		return domain.SearchOut{}, err
	}
	persons, err := s.Repo.Persons(ctx, orgID)
	if err != nil {
		return domain.SearchOut{}, err
	}

	windows := timeline.NewWindowSet(in.Period.Start, in.Period.End, teams, in.Teams, in.ViewAll)

	out := domain.SearchOut{Persons: []statsdomain.PersonSummary{}}
	for _, p := range persons {
		if !filters.Evaluate(fs, p.Fields) {
			continue
		}
		if in.OnlyFollowed && !followedDuring(windows, p) {
			continue
		}
		out.Persons = append(out.Persons, statsdomain.PersonSummary{
			ID:              p.ID,
			Name:            p.Name,
			Gender:          p.Gender,
			FollowedSince:   p.FollowedSince,
			OutOfActiveList: p.OutOfActiveList,
		})
	}
	out.Total = len(out.Persons)
	return out, nil
}

// followedDuring reports whether any interaction lands inside both an
// active-list period and a merged assigned team period of the window
func followedDuring(ws timeline.WindowSet, p *tally.Person) bool {
	active := timeline.ActivePeriods(p.FollowedSince, p.OutOfActiveList, p.History)
	team := timeline.MergedTeamPeriods(ws, p.AssignedTeams)
	for _, iso := range p.Interactions {
		if timeline.InActiveTeamIntersection(timeline.Canon(iso), active, team) {
			return true
		}
	}
	return false
}
