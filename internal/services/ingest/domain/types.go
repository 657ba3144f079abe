// Package domain holds ingest loop types and ports
package domain

import "time"

// CycleOutcome records what one ingestion cycle did
type CycleOutcome struct {
	At       time.Time
	Fetched  int
	Inserted int
	Deduped  int
	Skipped  int
	Err      error
}

// Status is the supervised view of the loop exposed for readiness reporting
type Status struct {
	Running   bool
	LastCycle *CycleOutcome
}
