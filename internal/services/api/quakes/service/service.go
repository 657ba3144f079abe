// Package service contains quakes read workflows
package service

import (
	"context"
	"errors"

	"quakewatch/internal/modkit/repokit"
	perr "quakewatch/internal/platform/errors"
	"quakewatch/internal/services/api/quakes/domain"
	"quakewatch/internal/services/api/quakes/repo"

	"github.com/google/uuid"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// Service defines the service contract for quakes
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New creates a new quakes service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("quakes.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("quakes.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db}
}

// List returns matching records ordered by occurred_at descending plus the
// total filtered count. Limit is silently clamped, offset floors at zero
func (s *Svc) List(ctx context.Context, in domain.ListInput) (domain.ListResponse, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := in.Offset
	if offset < 0 {
		offset = 0
	}

	f := repo.Filter{
		MinMagnitude: in.MinMagnitude,
		MaxMagnitude: in.MaxMagnitude,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
	}

	rows, err := s.Repo.List(ctx, f, limit, offset)
	if err != nil {
		return domain.ListResponse{}, perr.FromPostgres(err, "list earthquakes failed")
	}
	total, err := s.Repo.Count(ctx, f)
	if err != nil {
		return domain.ListResponse{}, perr.FromPostgres(err, "count earthquakes failed")
	}

	out := make([]domain.Earthquake, 0, len(rows))
	for _, r := range rows {
		out = append(out, toDomain(r))
	}
	return domain.ListResponse{
		Data:       out,
		Pagination: domain.Pagination{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// Get validates the id shape then looks up by primary key
func (s *Svc) Get(ctx context.Context, id string) (domain.Earthquake, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return domain.Earthquake{}, perr.Validationf("invalid id")
	}
	row, err := s.Repo.GetByID(ctx, parsed.String())
	if err != nil {
		if errors.Is(err, perr.ErrNotFound) {
			return domain.Earthquake{}, perr.NotFoundf("earthquake %s not found", parsed)
		}
		return domain.Earthquake{}, perr.FromPostgres(err, "get earthquake failed")
	}
	return toDomain(row), nil
}

func toDomain(r repo.Row) domain.Earthquake {
	return domain.Earthquake{
		ID:         r.ID,
		USGSID:     r.USGSID,
		Magnitude:  r.Magnitude,
		Location:   r.Location,
		OccurredAt: r.OccurredAt,
		Latitude:   r.Latitude,
		Longitude:  r.Longitude,
		DepthKM:    r.DepthKM,
	}
}
