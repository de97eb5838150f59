package module

import (
	"context"

	"caseflow/internal/services/api/org/domain"
	orgsvc "caseflow/internal/services/api/org/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptOrgPort struct{ svc orgsvc.Service }

// Teams lists the organisation's teams
func (a adaptOrgPort) Teams(ctx context.Context) ([]domain.TeamRow, error) {
	return a.svc.Teams(ctx)
}

// Territories lists the organisation's territories
func (a adaptOrgPort) Territories(ctx context.Context) ([]domain.TerritoryRow, error) {
	return a.svc.Territories(ctx)
}
