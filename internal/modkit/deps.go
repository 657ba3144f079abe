// Package modkit provides module wiring and core deps
package modkit

import (
	"quakewatch/internal/modkit/repokit"
	"quakewatch/internal/platform/config"
	"quakewatch/internal/platform/logger"
	"quakewatch/internal/platform/metrics"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log     logger.Logger
	Cfg     config.Conf
	PG      repokit.TxRunner
	Metrics *metrics.Registry
}

// ZeroOK returns true when deps are safe to use with zero values in tests
// consumers should still nil check for optional stores
func (d Deps) ZeroOK() bool { return true }
