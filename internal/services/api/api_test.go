package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"caseflow/internal/modkit/module"
	"caseflow/internal/platform/config"
	phttp "caseflow/internal/platform/net/http"
	"caseflow/internal/platform/store"

	orgdomain "caseflow/internal/services/api/org/domain"
	personsdomain "caseflow/internal/services/api/persons/domain"
	statsdomain "caseflow/internal/services/api/stats/domain"

	"github.com/go-chi/chi/v5"
)

type stubTx struct{}

func (stubTx) Exec(context.Context, string, ...any) (store.CommandTag, error) {
	panic("unexpected sql")
}
func (stubTx) Query(context.Context, string, ...any) (store.Rows, error) { panic("unexpected sql") }
func (stubTx) QueryRow(context.Context, string, ...any) store.Row        { panic("unexpected sql") }
func (stubTx) Tx(context.Context, func(q store.RowQuerier) error) error  { panic("unexpected sql") }

func mountAPI(t *testing.T) http.Handler {
	t.Helper()
	module.Reset()
	t.Cleanup(module.Reset)

	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), Options{
		Config: config.New(),
		Store:  &store.Store{PG: stubTx{}},
	})
	return mux
}

func TestMountServesMetaUnderV1(t *testing.T) {
	h := mountAPI(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/meta/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200 got %d\n%s", rec.Code, rec.Body.String())
	}
}

func TestMountRequiresOrgForOrgRoutes(t *testing.T) {
	h := mountAPI(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/org/teams", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("want 401 got %d\n%s", rec.Code, rec.Body.String())
	}
}

func TestMountRegistersModulePorts(t *testing.T) {
	mountAPI(t)

	if _, ok := module.PortsAs[statsdomain.ServicePort]("stats"); !ok {
		t.Fatal("stats ports not registered")
	}
	if _, ok := module.PortsAs[personsdomain.ServicePort]("persons"); !ok {
		t.Fatal("persons ports not registered")
	}
	if _, ok := module.PortsAs[orgdomain.ServicePort]("org"); !ok {
		t.Fatal("org ports not registered")
	}
}
