// Package http provides http transport for org reference data
package http

import (
	stdhttp "net/http"

	"caseflow/internal/modkit/httpkit"
	svc "caseflow/internal/services/api/org/service"
)

// Register mounts org endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/teams", h.teams)
	httpkit.Get(r, "/territories", h.territories)
}

type handlers struct{ svc svc.Service }

func (h *handlers) teams(r *stdhttp.Request) (any, error) {
	return h.svc.Teams(r.Context())
}

func (h *handlers) territories(r *stdhttp.Request) (any, error) {
	return h.svc.Territories(r.Context())
}
