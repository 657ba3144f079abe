// Package api provides the HTTP API for the application
package api

import (
	"quakewatch/internal/platform/config"
	"quakewatch/internal/platform/logger"
	"quakewatch/internal/platform/metrics"
	phttp "quakewatch/internal/platform/net/http"
	"quakewatch/internal/platform/store"

	"quakewatch/internal/modkit"
	"quakewatch/internal/modkit/httpkit"
	"quakewatch/internal/modkit/module"
	"quakewatch/internal/modkit/swaggerkit"

	metamod "quakewatch/internal/services/api/meta/module"
	quakesmod "quakewatch/internal/services/api/quakes/module"
	ingestdomain "quakewatch/internal/services/ingest/domain"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Metrics        *metrics.Registry
	Ingest         ingestdomain.RunnerPort
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg:     opt.Config,
		PG:      opt.Store.PG,
		Metrics: opt.Metrics,
	}

	mods := []module.Module{
		metamod.New(deps, modkit.WithPorts(metamod.Ports{Ingest: opt.Ingest})),
		quakesmod.New(deps),
	}

	// common middleware stack on the root, /health is answered by the
	// heartbeat middleware before any route runs
	r.Use(httpkit.CommonStack()...)

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	if opt.Metrics != nil {
		r.Handle("/metrics", opt.Metrics.Handler())
	}

	for _, m := range mods {
		// register each module's ports under its own name (for cross-module lookups)
		module.Register(m.Name(), m.Ports())

		// mount module routes under its Prefix()
		m.MountRoutes(r)
	}
}
