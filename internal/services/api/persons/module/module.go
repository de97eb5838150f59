// Package module wires persons into the API using modkit
package module

import (
	"net/http"

	modkit "caseflow/internal/modkit"
	"caseflow/internal/modkit/httpkit"
	str "caseflow/internal/platform/strings"
	personshttp "caseflow/internal/services/api/persons/http"
	personsrepo "caseflow/internal/services/api/persons/repo"
	personssvc "caseflow/internal/services/api/persons/service"
)

// Module implements the persons module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc personssvc.Service
}

// New constructs the persons module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("persons"), modkit.WithPrefix("/persons")}, opts...)...)

	repo := personsrepo.NewPG()
	svc := personssvc.New(deps.PG, repo)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptPersonsPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		personshttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
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
