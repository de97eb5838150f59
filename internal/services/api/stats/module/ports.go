package module

import (
	"context"

	"caseflow/internal/services/api/stats/domain"
	statssvc "caseflow/internal/services/api/stats/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptStatsPort struct{ svc statssvc.Service }

// Persons runs the pipeline and returns the mode selection
func (a adaptStatsPort) Persons(ctx context.Context, in domain.StatsQuery) (domain.PersonsOut, error) {
	return a.svc.Persons(ctx, in)
}

// Report runs the pipeline and returns the full aggregation
func (a adaptStatsPort) Report(ctx context.Context, in domain.StatsQuery) (domain.ReportOut, error) {
	return a.svc.Report(ctx, in)
}
