// Package repo provides postgres access for org reference data
package repo

import (
	"context"

	"caseflow/internal/modkit/repokit"
	perr "caseflow/internal/platform/errors"

	"caseflow/internal/services/api/org/domain"
)

// Repo is the minimal persistence surface for org reference data
type Repo interface {
	Teams(ctx context.Context, orgID string) ([]domain.TeamRow, error)
	Territories(ctx context.Context, orgID string) ([]domain.TerritoryRow, error)
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Teams(ctx context.Context, orgID string) ([]domain.TeamRow, error) {
	const sql = `
select id, name, night_session
from teams
where org_id = $1
order by name asc, id asc
`
	rows, err := r.q.Query(ctx, sql, orgID)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "load teams")
	}
	defer rows.Close()
	var out []domain.TeamRow
	for rows.Next() {
		var t domain.TeamRow
		if err := rows.Scan(&t.ID, &t.Name, &t.NightSession); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "scan team")
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *queries) Territories(ctx context.Context, orgID string) ([]domain.TerritoryRow, error) {
	const sql = `
select id, name, coalesce(types, '{}')
from territories
where org_id = $1
order by name asc, id asc
`
	rows, err := r.q.Query(ctx, sql, orgID)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "load territories")
	}
	defer rows.Close()
	var out []domain.TerritoryRow
	for rows.Next() {
		var t domain.TerritoryRow
		if err := rows.Scan(&t.ID, &t.Name, &t.Types); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "scan territory")
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
