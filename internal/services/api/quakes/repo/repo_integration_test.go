//go:build integration_pg
// +build integration_pg

package repo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"quakewatch/internal/core/geofeed"
	perr "quakewatch/internal/platform/errors"
	"quakewatch/internal/platform/store"
	ingestrepo "quakewatch/internal/services/ingest/repo"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mp.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

// migrate applies the real schema file so the test covers it too
func migrate(ctx context.Context, t *testing.T, s *store.Store) {
	t.Helper()
	ddl, err := os.ReadFile("../../../../../migrations/0001_earthquakes.sql")
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	if _, err := store.Exec(ctx, s.PG, string(ddl)); err != nil {
		t.Fatalf("apply migration: %v", err)
	}
}

func event(usgsID string, mag float32, at time.Time) geofeed.Earthquake {
	return geofeed.Earthquake{
		ID:         uuid.New(),
		ExternalID: usgsID,
		Location:   "Testville",
		Magnitude:  mag,
		Latitude:   37,
		Longitude:  -122,
		DepthKM:    10,
		OccurredAt: at,
	}
}

func TestRepos_Integration_IngestThenQuery(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	s, err := store.Open(ctx, store.Config{
		AppName: "quakewatch-repo-integration",
		PG:      store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2},
	}, store.WithLogger(zerolog.New(io.Discard)))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer func() { _ = s.Close(ctx) }()

	migrate(ctx, t, s)

	writer := ingestrepo.NewPG().Bind(s.PG)
	reader := NewPG().Bind(s.PG)

	base := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	older := event("us_old", 2.5, base)
	newer := event("us_new", 5.5, base.Add(24*time.Hour))

	for _, eq := range []geofeed.Earthquake{older, newer} {
		inserted, err := writer.Insert(ctx, eq)
		if err != nil {
			t.Fatalf("insert %s: %v", eq.ExternalID, err)
		}
		if !inserted {
			t.Fatalf("insert %s reported duplicate on first write", eq.ExternalID)
		}
	}

	// same usgs_id again, existing row wins
	dup := event("us_new", 9.9, base)
	inserted, err := writer.Insert(ctx, dup)
	if err != nil {
		t.Fatalf("insert duplicate: %v", err)
	}
	if inserted {
		t.Fatal("duplicate usgs_id must be skipped")
	}

	// two events without an upstream id both land
	for i := 0; i < 2; i++ {
		anon := event("", 1.0, base.Add(time.Duration(i)*time.Hour))
		inserted, err := writer.Insert(ctx, anon)
		if err != nil {
			t.Fatalf("insert anonymous: %v", err)
		}
		if !inserted {
			t.Fatal("rows without usgs_id must never dedupe each other")
		}
	}

	total, err := reader.Count(ctx, Filter{})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 4 {
		t.Fatalf("count = %d, want 4", total)
	}

	// newest first
	rows, err := reader.List(ctx, Filter{}, 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("list = %d rows, want 4", len(rows))
	}
	if rows[0].USGSID == nil || *rows[0].USGSID != "us_new" {
		t.Fatalf("first row = %+v, want us_new first", rows[0])
	}
	if rows[0].Magnitude != 5.5 {
		t.Fatalf("duplicate insert must not update, magnitude = %v", rows[0].Magnitude)
	}

	// magnitude band keeps only the strong event
	minM, maxM := float32(5), float32(6)
	rows, err = reader.List(ctx, Filter{MinMagnitude: &minM, MaxMagnitude: &maxM}, 10, 0)
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(rows) != 1 || *rows[0].USGSID != "us_new" {
		t.Fatalf("filtered rows = %+v", rows)
	}

	// time window excludes the newer event
	end := base.Add(12 * time.Hour)
	rows, err = reader.List(ctx, Filter{EndTime: &end}, 10, 0)
	if err != nil {
		t.Fatalf("list windowed: %v", err)
	}
	for _, r := range rows {
		if r.OccurredAt.After(end) {
			t.Fatalf("row %+v escapes the window", r)
		}
	}

	// pagination window
	rows, err = reader.List(ctx, Filter{}, 2, 2)
	if err != nil {
		t.Fatalf("list paged: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("page = %d rows, want 2", len(rows))
	}

	// primary key lookup round trip
	got, err := reader.GetByID(ctx, rows[0].ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.ID != rows[0].ID {
		t.Fatalf("got = %+v", got)
	}

	_, err = reader.GetByID(ctx, uuid.NewString())
	if !errors.Is(err, perr.ErrNotFound) {
		t.Fatalf("missing id err = %v, want ErrNotFound", err)
	}
}
