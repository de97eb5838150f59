// Package service contains stats workflows
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"caseflow/internal/modkit/repokit"
	perr "caseflow/internal/platform/errors"
	"caseflow/internal/platform/logger"
	pnet "caseflow/internal/platform/net"

	"caseflow/internal/core/tally"
	"caseflow/internal/core/timeline"
	"caseflow/internal/services/api/stats/domain"
	"caseflow/internal/services/api/stats/repo"
)

// Service defines the stats service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the stats service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New constructs a stats service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("stats.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("stats.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db}
}

// Persons runs the pipeline and returns the mode selection as slim rows
func (s *Svc) Persons(ctx context.Context, in domain.StatsQuery) (domain.PersonsOut, error) {
	res, err := s.run(ctx, in)
	if err != nil {
		return domain.PersonsOut{}, err
	}
	out := domain.PersonsOut{
		Mode:       string(in.TallyMode()),
		ModeCounts: res.ModeCounts,
		Persons:    make([]domain.PersonSummary, 0, len(res.Persons)),
	}
	for _, p := range res.Persons {
		out.Persons = append(out.Persons, domain.PersonSummary{
			ID:              p.ID,
			Name:            p.Name,
			Gender:          p.Gender,
			FollowedSince:   p.FollowedSince,
			OutOfActiveList: p.OutOfActiveList,
		})
	}
	return out, nil
}

// Report runs the pipeline and wraps the full result with report identity
func (s *Svc) Report(ctx context.Context, in domain.StatsQuery) (domain.ReportOut, error) {
	res, err := s.run(ctx, in)
	if err != nil {
		return domain.ReportOut{}, err
	}
	return domain.ReportOut{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Period:      in.Period,
		Teams:       in.Teams,
		ViewAll:     in.ViewAll,
		Mode:        string(in.TallyMode()),
		Result:      res,
	}, nil
}

func (s *Svc) run(ctx context.Context, in domain.StatsQuery) (*tally.Result, error) {
	orgID := pnet.OrgID(ctx)
	if orgID == "" {
		return nil, perr.Unauthorizedf("missing organisation")
	}
	if err := checkPeriod(in.Period); err != nil {
		return nil, err
	}

	fs, err := in.CoreFilters()
	if err != nil {
		return nil, err
	}

	teams, err := s.Repo.Teams(ctx, orgID)
	if err != nil {
		return nil, err
	}
	territories, err := s.Repo.Territories(ctx, orgID)
	if err != nil {
		return nil, err
	}
	persons, err := s.Repo.Persons(ctx, orgID)
	if err != nil {
		return nil, err
	}

	today := in.Today
	if today == "" {
		today = timeline.Canon(time.Now().UTC().Format(time.RFC3339))
	} else {
		today = timeline.Canon(today)
	}

	log := logger.C(ctx)
	res := tally.Compute(tally.Params{
		Persons:     persons,
		Filters:     fs,
		Windows:     timeline.NewWindowSet(in.Period.Start, in.Period.End, teams, in.Teams, in.ViewAll),
		Teams:       teams,
		Territories: territories,
		Mode:        in.TallyMode(),
		Today:       today,
		Trace: func(stage string, count int) {
			log.Debug().Str("stage", stage).Int("persons", count).Msg("stats pipeline")
		},
	})
	return res, nil
}

func checkPeriod(p domain.PeriodDTO) error {
	if p.Start != "" {
		if _, ok := timeline.ParseISO(p.Start); !ok {
			return perr.Validationf("period start %q is not a date", p.Start)
		}
	}
	if p.End != "" {
		if _, ok := timeline.ParseISO(p.End); !ok {
			return perr.Validationf("period end %q is not a date", p.End)
		}
	}
	return nil
}
