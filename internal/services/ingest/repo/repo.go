// Package repo provides the postgres write path for ingested events
package repo

import (
	"context"

	"quakewatch/internal/core/geofeed"
	"quakewatch/internal/modkit/repokit"
	pstrings "quakewatch/internal/platform/strings"
)

// Repo defines the dedupe-persist contract
type Repo interface {
	// Insert stores one record, reporting false when the dedupe key
	// already existed and the row was skipped
	Insert(ctx context.Context, eq geofeed.Earthquake) (bool, error)
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Insert(ctx context.Context, eq geofeed.Earthquake) (bool, error) {
	// existing row wins, no update. NULL usgs_id rows never conflict
	const sql = `
INSERT INTO earthquakes (id, usgs_id, magnitude, location, occurred_at, latitude, longitude, depth_km)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (usgs_id) DO NOTHING
`
	tag, err := r.q.Exec(ctx, sql,
		eq.ID.String(),
		pstrings.SQLNull(eq.ExternalID),
		eq.Magnitude,
		eq.Location,
		eq.OccurredAt,
		eq.Latitude,
		eq.Longitude,
		eq.DepthKM,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
