// Package repo provides postgres access for stats
package repo

import (
	"context"
	"encoding/json"

	"caseflow/internal/modkit/repokit"
	perr "caseflow/internal/platform/errors"

	"caseflow/internal/core/tally"
	"caseflow/internal/core/timeline"
)

// Repo is the minimal persistence surface for stats
type Repo interface {
	Persons(ctx context.Context, orgID string) ([]*tally.Person, error)
	Teams(ctx context.Context, orgID string) ([]timeline.Team, error)
	Territories(ctx context.Context, orgID string) ([]tally.Territory, error)
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

// Persons loads every person snapshot of the org in id order so that
// two runs over the same data aggregate in the same order
func (r *queries) Persons(ctx context.Context, orgID string) ([]*tally.Person, error) {
	const sql = `
select doc
from person_snapshots
where org_id = $1
order by person_id asc
`
	rows, err := r.q.Query(ctx, sql, orgID)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "load person snapshots")
	}
	defer rows.Close()
	var out []*tally.Person
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "scan person snapshot")
		}
		p := &tally.Person{}
		if err := json.Unmarshal(doc, p); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeJSON, "decode person snapshot")
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *queries) Teams(ctx context.Context, orgID string) ([]timeline.Team, error) {
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
	var out []timeline.Team
	for rows.Next() {
		var t timeline.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.NightSession); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "scan team")
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *queries) Territories(ctx context.Context, orgID string) ([]tally.Territory, error) {
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
	var out []tally.Territory
	for rows.Next() {
		var t tally.Territory
		if err := rows.Scan(&t.ID, &t.Name, &t.Types); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "scan territory")
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
