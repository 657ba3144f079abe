package domain

import (
	"context"

	"quakewatch/internal/core/geofeed"
)

// FetcherPort retrieves raw feed features
type FetcherPort interface {
	Fetch(ctx context.Context) ([]geofeed.Feature, error)
}

// RunnerPort is the handle the orchestrator keeps on the loop
type RunnerPort interface {
	// Run blocks until ctx is canceled, ticking on the configured interval
	Run(ctx context.Context) error
	// RunOnce executes a single cycle immediately
	RunOnce(ctx context.Context) CycleOutcome
	// Status reports liveness and the last cycle outcome
	Status() Status
}
