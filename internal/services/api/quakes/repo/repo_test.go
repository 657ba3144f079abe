package repo

import (
	"context"
	"strings"
	"testing"
	"time"

	"quakewatch/internal/platform/store"
)

// fakeQueryer captures SQL and args and plays back canned results
type fakeQueryer struct {
	lastSQL  string
	lastArgs []any
	rows     *fakeRows
	count    int
}

func (f *fakeQueryer) Exec(ctx context.Context, sql string, args ...any) (store.CommandTag, error) {
	f.lastSQL, f.lastArgs = sql, args
	return nil, nil
}

func (f *fakeQueryer) Query(ctx context.Context, sql string, args ...any) (store.Rows, error) {
	f.lastSQL, f.lastArgs = sql, args
	if f.rows == nil {
		f.rows = &fakeRows{}
	}
	return f.rows, nil
}

func (f *fakeQueryer) QueryRow(ctx context.Context, sql string, args ...any) store.Row {
	f.lastSQL, f.lastArgs = sql, args
	return countRow{n: f.count}
}

type fakeRows struct {
	recs []Row
	pos  int
}

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.recs) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	rec := r.recs[r.pos-1]
	*dest[0].(*string) = rec.ID
	*dest[1].(**string) = rec.USGSID
	*dest[2].(*float32) = rec.Magnitude
	*dest[3].(*string) = rec.Location
	*dest[4].(*time.Time) = rec.OccurredAt
	*dest[5].(*float32) = rec.Latitude
	*dest[6].(*float32) = rec.Longitude
	*dest[7].(*float32) = rec.DepthKM
	return nil
}

func (r *fakeRows) Err() error        { return nil }
func (r *fakeRows) Close()            {}
func (r *fakeRows) Columns() []string { return nil }

type countRow struct{ n int }

func (c countRow) Scan(dest ...any) error {
	*dest[0].(*int) = c.n
	return nil
}

func bindFake(f *fakeQueryer) Repo { return NewPG().Bind(f) }

func TestList_NoFilters(t *testing.T) {
	t.Parallel()

	q := &fakeQueryer{}
	r := bindFake(q)

	_, err := r.List(context.Background(), Filter{}, 50, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(q.lastSQL, "WHERE") {
		t.Fatalf("no filters must emit no WHERE, got %q", q.lastSQL)
	}
	if !strings.Contains(q.lastSQL, "ORDER BY occurred_at DESC LIMIT $1 OFFSET $2") {
		t.Fatalf("unexpected tail: %q", q.lastSQL)
	}
	if len(q.lastArgs) != 2 || q.lastArgs[0] != 50 || q.lastArgs[1] != 0 {
		t.Fatalf("args = %v, want [50 0]", q.lastArgs)
	}
}

func TestList_AllFiltersBound(t *testing.T) {
	t.Parallel()

	minM, maxM := float32(5), float32(6)
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)

	q := &fakeQueryer{}
	r := bindFake(q)

	_, err := r.List(context.Background(), Filter{
		MinMagnitude: &minM,
		MaxMagnitude: &maxM,
		StartTime:    &start,
		EndTime:      &end,
	}, 10, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantClauses := []string{
		"magnitude >= $1",
		"magnitude <= $2",
		"occurred_at >= $3",
		"occurred_at <= $4",
		"LIMIT $5 OFFSET $6",
	}
	for _, c := range wantClauses {
		if !strings.Contains(q.lastSQL, c) {
			t.Fatalf("sql %q missing %q", q.lastSQL, c)
		}
	}
	// every value is a bound arg, never interpolated
	if len(q.lastArgs) != 6 {
		t.Fatalf("args = %v, want 6 entries", q.lastArgs)
	}
	if q.lastArgs[0] != minM || q.lastArgs[1] != maxM {
		t.Fatalf("magnitude args = %v %v", q.lastArgs[0], q.lastArgs[1])
	}
}

func TestList_ScansRows(t *testing.T) {
	t.Parallel()

	usgs := "us1"
	q := &fakeQueryer{rows: &fakeRows{recs: []Row{{
		ID:         "11111111-1111-1111-1111-111111111111",
		USGSID:     &usgs,
		Magnitude:  4.2,
		Location:   "Testville",
		OccurredAt: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
	}}}}
	r := bindFake(q)

	rows, err := r.List(context.Background(), Filter{}, 50, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].Location != "Testville" || *rows[0].USGSID != "us1" {
		t.Fatalf("rows = %+v", rows)
	}
}

func TestCount_SharesPredicates(t *testing.T) {
	t.Parallel()

	minM := float32(5)
	q := &fakeQueryer{count: 42}
	r := bindFake(q)

	n, err := r.Count(context.Background(), Filter{MinMagnitude: &minM})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 42 {
		t.Fatalf("count = %d, want 42", n)
	}
	if !strings.Contains(q.lastSQL, "SELECT count(*) FROM earthquakes WHERE magnitude >= $1") {
		t.Fatalf("sql = %q", q.lastSQL)
	}
	if strings.Contains(q.lastSQL, "LIMIT") || strings.Contains(q.lastSQL, "OFFSET") {
		t.Fatalf("count must ignore limit/offset: %q", q.lastSQL)
	}
}

func TestGetByID_UsesPrimaryKey(t *testing.T) {
	t.Parallel()

	q := &fakeQueryer{rows: &fakeRows{recs: []Row{{ID: "abc"}}}}
	r := bindFake(q)

	row, err := r.GetByID(context.Background(), "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row.ID != "abc" {
		t.Fatalf("row = %+v", row)
	}
	if !strings.Contains(q.lastSQL, "WHERE id = $1") {
		t.Fatalf("sql = %q", q.lastSQL)
	}
}
