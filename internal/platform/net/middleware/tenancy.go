package middleware

import (
	"net/http"

	pnet "caseflow/internal/platform/net"
)

// OrgHeaderName is the header carrying the caller's organisation id
const OrgHeaderName = "X-Org-ID"

// OrgHeader copies the organisation header onto the request context so
// repos downstream can scope their queries without touching transport
func OrgHeader() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if org := r.Header.Get(OrgHeaderName); org != "" {
				r = r.WithContext(pnet.WithRequest(r.Context(), "", org))
			}
			next.ServeHTTP(w, r)
		})
	}
}
