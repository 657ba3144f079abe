// Package service contains the ingestion loop workflows
package service

import (
	"context"
	"sync"
	"time"

	"quakewatch/internal/core/geofeed"
	modkit "quakewatch/internal/modkit"
	"quakewatch/internal/modkit/repokit"
	"quakewatch/internal/platform/logger"
	"quakewatch/internal/platform/metrics"
	"quakewatch/internal/services/ingest/domain"
	"quakewatch/internal/services/ingest/repo"
)

// Config tunes the loop
type Config struct {
	// Interval between ticks, default one minute
	Interval time.Duration
}

// Service defines the loop contract
type Service interface{ domain.RunnerPort }

// Svc implements the Service interface
type Svc struct {
	cfg     Config
	fetcher domain.FetcherPort
	Repo    repo.Repo
	metrics *metrics.Registry
	log     logger.Logger

	mu      sync.Mutex
	running bool
	last    *domain.CycleOutcome

	now func() time.Time
}

// New creates the ingestion service
func New(deps modkit.Deps, fetcher domain.FetcherPort, cfg Config) *Svc {
	if deps.PG == nil {
		panic("ingest.Service requires a non nil TxRunner")
	}
	if fetcher == nil {
		panic("ingest.Service requires a fetcher")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	return &Svc{
		cfg:     cfg,
		fetcher: fetcher,
		Repo:    repokit.MustBind(repo.NewPG(), deps.PG),
		metrics: deps.Metrics,
		log:     *logger.Named("ingest"),
		now:     time.Now,
	}
}

// Run ticks until ctx is canceled. Cycle failures are contained, the next
// tick proceeds regardless of the previous outcome
func (s *Svc) Run(ctx context.Context) error {
	s.setRunning(true)
	defer s.setRunning(false)

	s.log.Info().Dur("interval", s.cfg.Interval).Msg("ingestion loop started")

	t := time.NewTicker(s.cfg.Interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("ingestion loop stopped")
			return ctx.Err()
		case <-t.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce executes a single fetch, normalize, persist cycle
func (s *Svc) RunOnce(ctx context.Context) domain.CycleOutcome {
	out := domain.CycleOutcome{At: s.now().UTC()}

	start := time.Now()
	features, err := s.fetcher.Fetch(ctx)
	if s.metrics != nil {
		s.metrics.FetchSeconds.Observe(time.Since(start).Seconds())
		s.metrics.CyclesTotal.Inc()
	}
	if err != nil {
		out.Err = err
		if s.metrics != nil {
			s.metrics.CycleFailures.Inc()
		}
		s.log.Warn().Err(err).Msg("fetch failed, retrying next tick")
		s.record(out)
		return out
	}

	out.Fetched = len(features)
	for _, eq := range geofeed.NormalizeAll(features) {
		inserted, err := s.Repo.Insert(ctx, eq)
		switch {
		case err != nil:
			// one bad record must not abort the batch
			out.Skipped++
			s.log.Warn().Err(err).Str("usgs_id", eq.ExternalID).Msg("insert failed, record skipped")
		case inserted:
			out.Inserted++
			if s.metrics != nil {
				s.metrics.IngestedTotal.Inc()
			}
		default:
			out.Deduped++
			if s.metrics != nil {
				s.metrics.DedupedTotal.Inc()
			}
		}
	}

	s.log.Info().
		Int("fetched", out.Fetched).
		Int("inserted", out.Inserted).
		Int("deduped", out.Deduped).
		Int("skipped", out.Skipped).
		Msg("cycle done")

	s.record(out)
	return out
}

// Status reports loop liveness and the last cycle outcome
func (s *Svc) Status() domain.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := domain.Status{Running: s.running}
	if s.last != nil {
		c := *s.last
		st.LastCycle = &c
	}
	return st
}

func (s *Svc) setRunning(v bool) {
	s.mu.Lock()
	s.running = v
	s.mu.Unlock()
}

func (s *Svc) record(out domain.CycleOutcome) {
	s.mu.Lock()
	s.last = &out
	s.mu.Unlock()
}
