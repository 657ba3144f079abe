package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"quakewatch/internal/platform/config"
	"quakewatch/internal/platform/logger"
	"quakewatch/internal/platform/metrics"
	phttp "quakewatch/internal/platform/net/http"
	"quakewatch/internal/platform/store"

	"quakewatch/internal/modkit"
	"quakewatch/internal/modkit/repokit"
	"quakewatch/internal/services/api"
	ingestmod "quakewatch/internal/services/ingest/module"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_") // pgCfg lives under SERVICE_PGSQL_*

	// bring up logging early
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// open the platform store (postgres)
	st, err := store.Open(
		ctx,
		store.Config{
			AppName: "quakewatch-api",
			PG: store.PGConfig{
				Enabled:        true,
				URL:            pgCfg.MustString("DBURL"),
				MaxConns:       int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs:    pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:         pgCfg.MayBool("LOG_SQL", false),
				ConnectTimeout: time.Duration(pgCfg.MayInt("CONNECT_TIMEOUT_MS", 5000)) * time.Millisecond,
			},
		},
		store.WithLogger(*l),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	reg := metrics.New()

	deps := modkit.Deps{
		Cfg:     root,
		PG:      st.PG,
		Metrics: reg,
	}

	// supervised ingestion loop, owned here so shutdown cancels it and
	// the meta module can report its liveness
	ingOpts := ingestmod.FromConfig(root)
	ing := ingestmod.New(deps, ingOpts)
	runner := ing.Ports().(ingestmod.Ports).Runner
	if ingOpts.Enabled {
		go func() {
			if err := runner.Run(ctx); err != nil && ctx.Err() == nil {
				l.Error().Err(err).Msg("ingestion loop exited")
			}
		}()
	}

	// http server (reads CORE_API_PORT)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			Metrics:        reg,
			Ingest:         runner,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	// run until signaled, Run shuts down gracefully on cancel
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
