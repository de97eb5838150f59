package module

import (
	"context"

	"caseflow/internal/services/api/persons/domain"
	personssvc "caseflow/internal/services/api/persons/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptPersonsPort struct{ svc personssvc.Service }

// Timeline reconciles one person's follow-up history into periods
func (a adaptPersonsPort) Timeline(ctx context.Context, in domain.TimelineInput) (domain.TimelineOut, error) {
	return a.svc.Timeline(ctx, in)
}

// Search selects persons by field filters
func (a adaptPersonsPort) Search(ctx context.Context, in domain.SearchInput) (domain.SearchOut, error) {
	return a.svc.Search(ctx, in)
}
