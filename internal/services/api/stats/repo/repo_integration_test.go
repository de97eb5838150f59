//go:build integration_pg
// +build integration_pg

package repo

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"caseflow/internal/platform/store"

	"github.com/rs/zerolog"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres launches a disposable Postgres and returns DSN + stop func
func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mp.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

const schema = `
create table teams (
	org_id        text not null,
	id            text not null,
	name          text not null,
	night_session boolean not null default false,
	primary key (org_id, id)
);
create table territories (
	org_id text not null,
	id     text not null,
	name   text not null,
	types  text[],
	primary key (org_id, id)
);
create table person_snapshots (
	org_id    text not null,
	person_id text not null,
	doc       jsonb not null,
	primary key (org_id, person_id)
);
`

func TestRepo_Integration_Loaders(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	st, err := store.Open(ctx, store.Config{
		PG: store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2},
	}, store.WithLogger(zerolog.New(io.Discard)))
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })

	if _, err := st.PG.Exec(ctx, schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}

	const org = "org-1"
	seed := []struct {
		sql  string
		args []any
	}{
		{`insert into teams (org_id, id, name, night_session) values ($1,$2,$3,$4)`, []any{org, "team-a", "Maraude", false}},
		{`insert into teams (org_id, id, name, night_session) values ($1,$2,$3,$4)`, []any{org, "team-b", "Nuit", true}},
		{`insert into territories (org_id, id, name, types) values ($1,$2,$3,$4)`, []any{org, "terr-1", "Gare", []string{"Lieu de passage"}}},
		{
			`insert into person_snapshots (org_id, person_id, doc) values ($1,$2,$3)`,
			[]any{org, "p1", `{"id":"p1","name":"A","followed_since":"2024-01-01T00:00:00.000Z"}`},
		},
		{
			`insert into person_snapshots (org_id, person_id, doc) values ($1,$2,$3)`,
			[]any{org, "p2", `{"id":"p2","name":"B","out_of_active_list":true}`},
		},
		// another org must stay invisible
		{`insert into teams (org_id, id, name) values ($1,$2,$3)`, []any{"org-2", "team-x", "Autre"}},
		{
			`insert into person_snapshots (org_id, person_id, doc) values ($1,$2,$3)`,
			[]any{"org-2", "px", `{"id":"px"}`},
		},
	}
	for _, s := range seed {
		if _, err := st.PG.Exec(ctx, s.sql, s.args...); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	r := NewPG().Bind(st.PG)

	teams, err := r.Teams(ctx, org)
	if err != nil {
		t.Fatalf("Teams: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("want 2 teams got %d", len(teams))
	}
	if teams[0].Name != "Maraude" || teams[1].NightSession != true {
		t.Fatalf("unexpected teams: %#v", teams)
	}

	terrs, err := r.Territories(ctx, org)
	if err != nil {
		t.Fatalf("Territories: %v", err)
	}
	if len(terrs) != 1 || terrs[0].Name != "Gare" || len(terrs[0].Types) != 1 {
		t.Fatalf("unexpected territories: %#v", terrs)
	}

	persons, err := r.Persons(ctx, org)
	if err != nil {
		t.Fatalf("Persons: %v", err)
	}
	if len(persons) != 2 {
		t.Fatalf("want 2 persons got %d", len(persons))
	}
	if persons[0].ID != "p1" || persons[0].FollowedSince != "2024-01-01T00:00:00.000Z" {
		t.Fatalf("unexpected first person: %#v", persons[0])
	}
	if !persons[1].OutOfActiveList {
		t.Fatalf("p2 should be out of the active list")
	}
}
