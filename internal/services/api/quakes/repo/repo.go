// Package repo provides postgres access for quakes reads
package repo

import (
	"context"
	"time"

	"quakewatch/internal/modkit/repokit"
	"quakewatch/internal/platform/store"
)

// Repo defines the repository contract for quakes
type Repo interface {
	List(ctx context.Context, f Filter, limit, offset int) ([]Row, error)
	Count(ctx context.Context, f Filter) (int, error)
	GetByID(ctx context.Context, id string) (Row, error)
}

// Filter mirrors the present optional predicates
type Filter struct {
	MinMagnitude *float32
	MaxMagnitude *float32
	StartTime    *time.Time
	EndTime      *time.Time
}

// Row represents one earthquakes row
type Row struct {
	ID         string
	USGSID     *string
	Magnitude  float32
	Location   string
	OccurredAt time.Time
	Latitude   float32
	Longitude  float32
	DepthKM    float32
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

const selectCols = `SELECT id::text, usgs_id, magnitude, location, occurred_at, latitude, longitude, depth_km
FROM earthquakes`

// predicates assembles the shared WHERE clauses from present filters only
// values are always bound, never interpolated
func predicates(f Filter) *repokit.Predicates {
	p := &repokit.Predicates{}
	if f.MinMagnitude != nil {
		p.Where("magnitude >= ?", *f.MinMagnitude)
	}
	if f.MaxMagnitude != nil {
		p.Where("magnitude <= ?", *f.MaxMagnitude)
	}
	if f.StartTime != nil {
		p.Where("occurred_at >= ?", *f.StartTime)
	}
	if f.EndTime != nil {
		p.Where("occurred_at <= ?", *f.EndTime)
	}
	return p
}

func scanRow(r store.Row) (Row, error) {
	var out Row
	err := r.Scan(
		&out.ID,
		&out.USGSID,
		&out.Magnitude,
		&out.Location,
		&out.OccurredAt,
		&out.Latitude,
		&out.Longitude,
		&out.DepthKM,
	)
	return out, err
}

func (r *queries) List(ctx context.Context, f Filter, limit, offset int) ([]Row, error) {
	sql, args := predicates(f).Build(selectCols, "ORDER BY occurred_at DESC LIMIT ? OFFSET ?", limit, offset)
	return store.Many(ctx, r.q, scanRow, sql, args...)
}

func (r *queries) Count(ctx context.Context, f Filter) (int, error) {
	sql, args := predicates(f).BuildCount(`SELECT count(*) FROM earthquakes`)
	return store.Scalar[int](ctx, r.q, sql, args...)
}

func (r *queries) GetByID(ctx context.Context, id string) (Row, error) {
	return store.One(ctx, r.q, scanRow, selectCols+` WHERE id = $1`, id)
}
