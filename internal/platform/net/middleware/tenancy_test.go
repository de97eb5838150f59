package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	pnet "caseflow/internal/platform/net"
)

func TestOrgHeaderSetsContext(t *testing.T) {
	var got string
	h := OrgHeader()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = pnet.OrgID(r.Context())
	}))

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set(OrgHeaderName, "org-42")
	h.ServeHTTP(httptest.NewRecorder(), r)

	if got != "org-42" {
		t.Fatalf("want org-42 got %q", got)
	}
}

func TestOrgHeaderAbsentLeavesContextEmpty(t *testing.T) {
	var got string
	h := OrgHeader()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = pnet.OrgID(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	if got != "" {
		t.Fatalf("want empty org got %q", got)
	}
}
