// Package http provides http transport for persons
package http

import (
	stdhttp "net/http"

	"caseflow/internal/modkit/httpkit"
	"caseflow/internal/services/api/persons/domain"
	svc "caseflow/internal/services/api/persons/service"
)

// Register mounts persons endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// reconciled follow-up periods for one person
	httpkit.PostJSON[domain.TimelineInput](r, "/timeline", h.timeline)

	// person selection by field filters
	httpkit.PostJSON[domain.SearchInput](r, "/search", h.search)
}

type handlers struct{ svc svc.Service }

func (h *handlers) timeline(r *stdhttp.Request, in domain.TimelineInput) (any, error) {
	return h.svc.Timeline(r.Context(), in)
}

func (h *handlers) search(r *stdhttp.Request, in domain.SearchInput) (any, error) {
	return h.svc.Search(r.Context(), in)
}
