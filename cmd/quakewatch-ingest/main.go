package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"quakewatch/internal/platform/config"
	"quakewatch/internal/platform/logger"
	"quakewatch/internal/platform/metrics"
	"quakewatch/internal/platform/store"

	"quakewatch/internal/modkit"
	"quakewatch/internal/modkit/repokit"
	ingestmod "quakewatch/internal/services/ingest/module"
)

// standalone ingestion worker for deployments that split the loop from the API
func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(
		ctx,
		store.Config{
			AppName: "quakewatch-ingest",
			PG: store.PGConfig{
				Enabled:        true,
				URL:            pgCfg.MustString("DBURL"),
				MaxConns:       int32(pgCfg.MayInt("MAX_CONNS", 2)),
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

	deps := modkit.Deps{
		Cfg:     root,
		PG:      st.PG,
		Metrics: metrics.New(),
	}

	ing := ingestmod.New(deps, ingestmod.FromConfig(root))
	runner := ing.Ports().(ingestmod.Ports).Runner

	if err := runner.Run(ctx); err != nil && ctx.Err() == nil {
		l.Panic().Err(err).Msg("ingestion loop stopped")
	}
}
