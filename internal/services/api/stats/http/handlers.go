// Package http provides http transport for stats
package http

import (
	stdhttp "net/http"

	"caseflow/internal/modkit/httpkit"
	"caseflow/internal/services/api/stats/domain"
	svc "caseflow/internal/services/api/stats/service"
)

// Register mounts stats endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// mode selection with population counts
	httpkit.PostJSON[domain.StatsQuery](r, "/persons", h.persons)

	// full aggregation for the report screens
	httpkit.PostJSON[domain.StatsQuery](r, "/report", h.report)
}

type handlers struct{ svc svc.Service }

func (h *handlers) persons(r *stdhttp.Request, in domain.StatsQuery) (any, error) {
	return h.svc.Persons(r.Context(), in)
}

func (h *handlers) report(r *stdhttp.Request, in domain.StatsQuery) (any, error) {
	return h.svc.Report(r.Context(), in)
}
