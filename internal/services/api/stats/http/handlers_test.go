package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "caseflow/internal/platform/errors"
	phttp "caseflow/internal/platform/net/http"

	"caseflow/internal/core/tally"
	"caseflow/internal/services/api/stats/domain"

	"github.com/go-chi/chi/v5"
)

type fakeSvc struct {
	persons domain.PersonsOut
	report  domain.ReportOut
	err     error

	gotQuery domain.StatsQuery
}

func (f *fakeSvc) Persons(_ context.Context, in domain.StatsQuery) (domain.PersonsOut, error) {
	f.gotQuery = in
	return f.persons, f.err
}

func (f *fakeSvc) Report(_ context.Context, in domain.StatsQuery) (domain.ReportOut, error) {
	f.gotQuery = in
	return f.report, f.err
}

func mount(s *fakeSvc) stdhttp.Handler {
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), s)
	return mux
}

func post(t *testing.T, h stdhttp.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	r := httptest.NewRequest("POST", path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, r)
	return rec
}

func TestPersonsEndpointDecodesQuery(t *testing.T) {
	f := &fakeSvc{persons: domain.PersonsOut{
		Mode:       "modified",
		ModeCounts: tally.ModeCounts{All: 2, Modified: 1},
		Persons:    []domain.PersonSummary{{ID: "p1", Name: "A"}},
	}}
	h := mount(f)

	rec := post(t, h, "/persons", `{
		"period": {"start": "2024-06-01", "end": "2024-06-30"},
		"teams": ["team-a"],
		"mode": "modified"
	}`)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("want 200 got %d\n%s", rec.Code, rec.Body.String())
	}
	if f.gotQuery.Mode != "modified" || len(f.gotQuery.Teams) != 1 {
		t.Fatalf("query lost in transport: %+v", f.gotQuery)
	}

	var body struct {
		Data domain.PersonsOut `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.ModeCounts.Modified != 1 || body.Data.Persons[0].ID != "p1" {
		t.Fatalf("unexpected payload: %+v", body.Data)
	}
}

func TestPersonsEndpointRejectsUnknownMode(t *testing.T) {
	h := mount(&fakeSvc{})

	rec := post(t, h, "/persons", `{"mode": "everything"}`)
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("want 400 got %d\n%s", rec.Code, rec.Body.String())
	}
}

func TestPersonsEndpointMapsServiceErrors(t *testing.T) {
	h := mount(&fakeSvc{err: perr.Unauthorizedf("missing organisation")})

	rec := post(t, h, "/persons", `{"mode": "all"}`)
	if rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("want 401 got %d\n%s", rec.Code, rec.Body.String())
	}
}

func TestReportEndpoint(t *testing.T) {
	f := &fakeSvc{report: domain.ReportOut{
		ID:     "3f0c9a2e-0000-0000-0000-000000000000",
		Mode:   "all",
		Result: &tally.Result{ModeCounts: tally.ModeCounts{All: 3}},
	}}
	h := mount(f)

	rec := post(t, h, "/report", `{"period": {"start": "2024-06-01", "end": "2024-06-30"}}`)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("want 200 got %d\n%s", rec.Code, rec.Body.String())
	}

	var body struct {
		Data domain.ReportOut `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.ID == "" || body.Data.Result == nil || body.Data.Result.ModeCounts.All != 3 {
		t.Fatalf("unexpected payload: %+v", body.Data)
	}
}
