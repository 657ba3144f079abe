// Package module wires the ingest service and exposes its ports
package module

import (
	"fmt"
	"time"

	"quakewatch/internal/modkit"
	"quakewatch/internal/modkit/httpkit"
	"quakewatch/internal/platform/config"
	"quakewatch/internal/platform/net/http/bind"

	"quakewatch/internal/adapters/feed/usgs"
	"quakewatch/internal/services/ingest/domain"
	"quakewatch/internal/services/ingest/service"
)

// Options carries ingest knobs loaded from config
type Options struct {
	FeedURL     string        `validate:"required,url"`
	Interval    time.Duration `validate:"gt=0"`
	HTTPTimeout time.Duration `validate:"gt=0"`
	Enabled     bool
}

// FromConfig loads ingest options from the CORE_INGEST_ env prefix
func FromConfig(root config.Conf) Options {
	cfg := root.Prefix("CORE_INGEST_")
	return Options{
		FeedURL:     cfg.MayString("FEED_URL", usgs.FeedURLDefault),
		Interval:    time.Duration(cfg.MayInt("INTERVAL_SECONDS", 60)) * time.Second,
		HTTPTimeout: time.Duration(cfg.MayInt("HTTP_TIMEOUT_SECONDS", 10)) * time.Second,
		Enabled:     cfg.MayBool("ENABLED", true),
	}
}

// Ports exposes the runner handle for readiness wiring
type Ports struct {
	Runner domain.RunnerPort
}

// Module defines the ingest module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the ingest module
// panics on invalid options, a bad feed URL or interval is a config error
func New(deps modkit.Deps, opts Options) *Module {
	if err := bind.Struct(opts); err != nil {
		panic(fmt.Sprintf("ingest: invalid options: %v", err))
	}
	fetcher := usgs.NewClient(usgs.Options{
		FeedURL: opts.FeedURL,
		Timeout: opts.HTTPTimeout,
	})
	svc := service.New(deps, fetcher, service.Config{Interval: opts.Interval})

	m := &Module{deps: deps}
	m.ports = Ports{Runner: svc}
	return m
}

// Name returns the module name
func (m *Module) Name() string { return "ingest" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Prefix returns the module config prefix (none, ingest is a worker)
func (m *Module) Prefix() string { return "" }

// MountRoutes returns no HTTP routes for ingest
func (m *Module) MountRoutes(_ httpkit.Router) {}
