package errors

import (
	stderrs "errors"
	"net/http"
	"testing"
)

func TestCodeOfWrappedChain(t *testing.T) {
	orig := stderrs.New("boom")
	err := Wrap(orig, ErrorCodeDB, "load person snapshots")

	if CodeOf(err) != ErrorCodeDB {
		t.Fatalf("want db code got %v", CodeOf(err))
	}
	if !stderrs.Is(err, orig) {
		t.Fatal("wrapped error lost its cause")
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validationf("filter %q: kind number needs a number condition", "age"), http.StatusBadRequest},
		{NotFoundf("person %q not found", "p1"), http.StatusNotFound},
		{Unauthorizedf("missing organisation"), http.StatusUnauthorized},
		{InvalidArgf("bad mode"), http.StatusUnprocessableEntity},
		{DBf("connection lost"), http.StatusInternalServerError},
		{stderrs.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("%v: want %d got %d", tc.err, tc.want, got)
		}
	}
}

func TestWireFromCarriesCodeAndMessage(t *testing.T) {
	w := WireFrom(NotFoundf("person %q not found", "p1"))
	if w.Code != ErrorCodeNotFound {
		t.Fatalf("want not found code got %v", w.Code)
	}
	if w.Message == "" {
		t.Fatal("wire message dropped")
	}
}

func TestWithFieldAttachesField(t *testing.T) {
	err := WithField(Validationf("must be a date"), "period.start")
	e, ok := As(err)
	if !ok {
		t.Fatal("expected a project error")
	}
	if e.Field() != "period.start" {
		t.Fatalf("want period.start got %q", e.Field())
	}
}

func TestIsCodeOnNilAndPlain(t *testing.T) {
	if IsCode(nil, ErrorCodeNotFound) {
		t.Fatal("nil error has no code")
	}
	if IsCode(stderrs.New("x"), ErrorCodeNotFound) {
		t.Fatal("plain error has no code")
	}
}
