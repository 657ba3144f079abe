// Package module wires quakes into the API using modkit
package module

import (
	"net/http"

	modkit "quakewatch/internal/modkit"
	"quakewatch/internal/modkit/httpkit"
	str "quakewatch/internal/platform/strings"
	quakeshttp "quakewatch/internal/services/api/quakes/http"
	quakesrepo "quakewatch/internal/services/api/quakes/repo"
	quakessvc "quakewatch/internal/services/api/quakes/service"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc quakessvc.Service
}

// New constructs a quakes module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("quakes"), modkit.WithPrefix("/earthquakes")}, opts...)...)

	repo := quakesrepo.NewPG()
	svc := quakessvc.New(deps.PG, repo)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = quakessvc.Service(svc)

	external := b.Register
	m.register = func(r httpkit.Router) {
		quakeshttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
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
func (m *Module) Name() string { return str.MustString(m.name, "quakes") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports returns the read service so other modules can call into quakes
func (m *Module) Ports() any { return m.ports }
