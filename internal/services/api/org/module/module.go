// Package module wires org reference data into the API using modkit
package module

import (
	"net/http"

	modkit "caseflow/internal/modkit"
	"caseflow/internal/modkit/httpkit"
	str "caseflow/internal/platform/strings"
	orghttp "caseflow/internal/services/api/org/http"
	orgrepo "caseflow/internal/services/api/org/repo"
	orgsvc "caseflow/internal/services/api/org/service"
)

// Module implements the org module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc orgsvc.Service
}

// New constructs the org module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("org"), modkit.WithPrefix("/org")}, opts...)...)

	repo := orgrepo.NewPG()
	svc := orgsvc.New(deps.PG, repo)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptOrgPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		orghttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, func(rr httpkit.Router) {
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
