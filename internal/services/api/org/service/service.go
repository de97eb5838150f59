// Package service contains org reference data workflows
package service

import (
	"context"

	"caseflow/internal/modkit/repokit"
	perr "caseflow/internal/platform/errors"
	pnet "caseflow/internal/platform/net"

	"caseflow/internal/services/api/org/domain"
	"caseflow/internal/services/api/org/repo"
)

// Service defines the org service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the org service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New constructs an org service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("org.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("org.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db}
}

// Teams lists the organisation's teams
func (s *Svc) Teams(ctx context.Context) ([]domain.TeamRow, error) {
	orgID := pnet.OrgID(ctx)
	if orgID == "" {
		return nil, perr.Unauthorizedf("missing organisation")
	}
	return s.Repo.Teams(ctx, orgID)
}

// Territories lists the organisation's territories
func (s *Svc) Territories(ctx context.Context) ([]domain.TerritoryRow, error) {
	orgID := pnet.OrgID(ctx)
	if orgID == "" {
		return nil, perr.Unauthorizedf("missing organisation")
	}
	return s.Repo.Territories(ctx, orgID)
}
