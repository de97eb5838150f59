package http

import (
	stdctx "context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	phttp "caseflow/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

type pingOK struct{}

func (pingOK) Ping(stdctx.Context) error { return nil }

type pingFail struct{}

func (pingFail) Ping(stdctx.Context) error { return errors.New("dial refused") }

func mount(d Deps) stdhttp.Handler {
	mux := chi.NewRouter()
	r := phttp.AdaptChi(mux)
	Register(r, d)
	return mux
}

func get(t *testing.T, h stdhttp.Handler, path string, out any) int {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decode %s: %v\n%s", path, err, rec.Body.String())
		}
	}
	return rec.Code
}

func TestHealth(t *testing.T) {
	h := mount(Deps{ServiceName: "caseflow-api", StartedAt: time.Now()})

	var body struct {
		Data HealthResponse `json:"data"`
	}
	if code := get(t, h, "/health", &body); code != stdhttp.StatusOK {
		t.Fatalf("want 200 got %d", code)
	}
	if !body.Data.OK || body.Data.Service != "caseflow-api" {
		t.Fatalf("unexpected payload: %+v", body.Data)
	}
}

func TestReadyStatuses(t *testing.T) {
	cases := []struct {
		name string
		pg   any
		want string
	}{
		{"pg ok", pingOK{}, "ok"},
		{"pg down", pingFail{}, "fail"},
		{"pg absent", nil, "degraded"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := mount(Deps{ServiceName: "caseflow-api", StartedAt: time.Now(), PG: tc.pg})

			var body struct {
				Data ReadyResponse `json:"data"`
			}
			get(t, h, "/ready", &body)
			if body.Data.Status != tc.want {
				t.Fatalf("want %q got %+v", tc.want, body.Data)
			}
		})
	}
}

func TestServiceUptime(t *testing.T) {
	h := mount(Deps{ServiceName: "caseflow-api", StartedAt: time.Now().Add(-3 * time.Second)})

	var body struct {
		Data ServiceResponse `json:"data"`
	}
	get(t, h, "/service", &body)
	if body.Data.Name != "caseflow-api" || body.Data.Uptime < 3 {
		t.Fatalf("unexpected payload: %+v", body.Data)
	}
}
