package service

import (
	"context"
	"testing"

	"caseflow/internal/modkit/repokit"
	perr "caseflow/internal/platform/errors"
	pnet "caseflow/internal/platform/net"
	"caseflow/internal/platform/store"

	"caseflow/internal/core/tally"
	"caseflow/internal/core/timeline"
	"caseflow/internal/services/api/persons/domain"
	"caseflow/internal/services/api/persons/repo"
	statsdomain "caseflow/internal/services/api/stats/domain"
)

type fakeTx struct{}

func (fakeTx) Exec(context.Context, string, ...any) (store.CommandTag, error) {
	panic("unexpected sql")
}
func (fakeTx) Query(context.Context, string, ...any) (store.Rows, error) { panic("unexpected sql") }
func (fakeTx) QueryRow(context.Context, string, ...any) store.Row        { panic("unexpected sql") }
func (fakeTx) Tx(context.Context, func(q store.RowQuerier) error) error  { panic("unexpected sql") }

type fakeRepo struct {
	persons []*tally.Person
	teams   []timeline.Team
}

func (f *fakeRepo) Person(_ context.Context, _, personID string) (*tally.Person, error) {
	for _, p := range f.persons {
		if p.ID == personID {
			return p, nil
		}
	}
	return nil, perr.NotFoundf("person %q not found", personID)
}

func (f *fakeRepo) Persons(context.Context, string) ([]*tally.Person, error) {
	return f.persons, nil
}

func (f *fakeRepo) Teams(context.Context, string) ([]timeline.Team, error) {
	return f.teams, nil
}

func newSvc(f *fakeRepo) *Svc {
	return New(fakeTx{}, repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return f }))
}

func orgCtx() context.Context {
	return pnet.WithRequest(context.Background(), "", "org-1")
}

const teamA = "team-a"

func exited(date, outDate string) timeline.HistoryEntry {
	return timeline.HistoryEntry{
		Date: date,
		Data: timeline.HistoryData{
			OutOfActiveList:     &timeline.BoolChange{Old: false, New: true},
			OutOfActiveListDate: &timeline.StringChange{Old: "", New: outDate},
		},
	}
}

func fixture() *fakeRepo {
	assigned := timeline.AssignedPeriods{
		teamA:                 []timeline.Period{{Start: "2024-01-01T00:00:00.000Z"}},
		timeline.AggregateKey: []timeline.Period{{Start: "2024-01-01T00:00:00.000Z"}},
	}
	return &fakeRepo{
		teams: []timeline.Team{{ID: teamA, Name: "Maraude"}},
		persons: []*tally.Person{
			{
				ID:            "p1",
				Name:          "A",
				Gender:        "Femme",
				FollowedSince: "2024-01-01T00:00:00.000Z",
				Fields:        map[string]any{"gender": "Femme"},
				Interactions:  []string{"2024-06-10T10:00:00.000Z"},
				AssignedTeams: assigned,
			},
			{
				ID:            "p2",
				Name:          "B",
				Gender:        "Homme",
				FollowedSince: "2024-01-01T00:00:00.000Z",
				Fields:        map[string]any{"gender": "Homme"},
				// interaction before the window only
				Interactions:  []string{"2024-03-01T10:00:00.000Z"},
				AssignedTeams: assigned,
			},
		},
	}
}

func TestTimelineRequiresOrganisation(t *testing.T) {
	s := newSvc(fixture())
	_, err := s.Timeline(context.Background(), domain.TimelineInput{PersonID: "p1"})
	if !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
		t.Fatalf("want unauthorized got %v", err)
	}
}

func TestTimelineUnknownPerson(t *testing.T) {
	s := newSvc(fixture())
	_, err := s.Timeline(orgCtx(), domain.TimelineInput{PersonID: "nope"})
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("want not found got %v", err)
	}
}

func TestTimelineReconcilesPeriods(t *testing.T) {
	f := fixture()
	f.persons[0].OutOfActiveList = true
	f.persons[0].History = []timeline.HistoryEntry{
		exited("2024-03-10T09:00:00.000Z", "2024-03-01T00:00:00.000Z"),
	}
	s := newSvc(f)

	out, err := s.Timeline(orgCtx(), domain.TimelineInput{
		PersonID: "p1",
		Today:    "2024-07-01T00:00:00Z",
	})
	if err != nil {
		t.Fatalf("Timeline: %v", err)
	}
	if out.PersonID != "p1" || !out.OutOfActiveList {
		t.Fatalf("snapshot fields lost: %+v", out)
	}
	if len(out.ActivePeriods) != 1 {
		t.Fatalf("want one active period got %+v", out.ActivePeriods)
	}
	ap := out.ActivePeriods[0]
	if ap.Start != "2024-01-01T00:00:00.000Z" || ap.End != "2024-03-01T00:00:00.000Z" {
		t.Fatalf("unexpected active period: %+v", ap)
	}
	if len(out.OutOfActivePeriods) != 1 {
		t.Fatalf("want one out period got %+v", out.OutOfActivePeriods)
	}
	op := out.OutOfActivePeriods[0]
	if op.Start != "2024-03-01T00:00:00.000Z" || op.End != "2024-07-02T00:00:00.000Z" {
		t.Fatalf("unexpected out period: %+v", op)
	}
}

func TestSearchFiltersFields(t *testing.T) {
	s := newSvc(fixture())

	out, err := s.Search(orgCtx(), domain.SearchInput{
		Filters: []statsdomain.FilterDTO{
			{Field: "gender", Kind: "enum", Values: []string{"Femme"}},
		},
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if out.Total != 1 || out.Persons[0].ID != "p1" {
		t.Fatalf("unexpected selection: %+v", out)
	}
}

func TestSearchOnlyFollowedNeedsWindowInteraction(t *testing.T) {
	s := newSvc(fixture())

	out, err := s.Search(orgCtx(), domain.SearchInput{
		Period:       statsdomain.PeriodDTO{Start: "2024-06-01", End: "2024-06-30"},
		Teams:        []string{teamA},
		OnlyFollowed: true,
		Today:        "2024-07-01T00:00:00Z",
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if out.Total != 1 || out.Persons[0].ID != "p1" {
		t.Fatalf("only p1 interacted during the window: %+v", out)
	}
}

func TestSearchEmptyFiltersKeepsEveryone(t *testing.T) {
	s := newSvc(fixture())

	out, err := s.Search(orgCtx(), domain.SearchInput{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if out.Total != 2 {
		t.Fatalf("want 2 got %+v", out)
	}
}
