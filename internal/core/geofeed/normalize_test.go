package geofeed

import (
	"testing"
	"time"

	"quakewatch/internal/platform/testkit"
)

func TestNormalize_FullFeature(t *testing.T) {
	t.Parallel()

	f := Feature{
		ID: "usgs_test_1",
		Properties: map[string]any{
			"mag":   4.2,
			"place": "Testville",
			"time":  float64(1609459200000),
		},
		Geometry: Geometry{Coordinates: []any{-122.0, 37.0, 10.0}},
	}

	eq := Normalize(f)

	if eq.ExternalID != "usgs_test_1" {
		t.Fatalf("external id = %q, want usgs_test_1", eq.ExternalID)
	}
	if eq.Location != "Testville" {
		t.Fatalf("location = %q, want Testville", eq.Location)
	}
	if eq.Magnitude != 4.2 {
		t.Fatalf("magnitude = %v, want 4.2", eq.Magnitude)
	}
	if eq.Longitude != -122.0 || eq.Latitude != 37.0 || eq.DepthKM != 10.0 {
		t.Fatalf("coords = (%v, %v, %v), want (-122, 37, 10)", eq.Longitude, eq.Latitude, eq.DepthKM)
	}
	want := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	if !eq.OccurredAt.Equal(want) {
		t.Fatalf("occurred_at = %v, want %v", eq.OccurredAt, want)
	}
	if eq.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatalf("id was not generated")
	}
}

func TestNormalize_Defaults(t *testing.T) {
	testkit.Serial(t)
	fixed := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	testkit.Swap(t, &now, func() time.Time { return fixed })

	cases := []struct {
		name         string
		in           Feature
		wantExternal string
		wantLocation string
		wantMag      float32
	}{
		{name: "empty feature", in: Feature{}, wantLocation: "unknown"},
		{name: "non string id", in: Feature{ID: 42.0}, wantLocation: "unknown"},
		{
			name:         "non numeric mag",
			in:           Feature{ID: "a", Properties: map[string]any{"mag": "big"}},
			wantExternal: "a", wantLocation: "unknown",
		},
		{
			name:         "non string place",
			in:           Feature{Properties: map[string]any{"place": 7.0, "mag": 1.5}},
			wantLocation: "unknown", wantMag: 1.5,
		},
		{
			name:         "non numeric time",
			in:           Feature{Properties: map[string]any{"time": "yesterday"}},
			wantLocation: "unknown",
		},
		{
			name:         "short coordinates",
			in:           Feature{Geometry: Geometry{Coordinates: []any{1.0, 2.0}}},
			wantLocation: "unknown",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eq := Normalize(tc.in)

			if eq.ExternalID != tc.wantExternal {
				t.Fatalf("external id = %q, want %q", eq.ExternalID, tc.wantExternal)
			}
			if eq.Location != tc.wantLocation {
				t.Fatalf("location = %q, want %q", eq.Location, tc.wantLocation)
			}
			if eq.Magnitude != tc.wantMag {
				t.Fatalf("magnitude = %v, want %v", eq.Magnitude, tc.wantMag)
			}
			if _, ok := tc.in.Properties["time"]; !ok || tc.name == "non numeric time" {
				if !eq.OccurredAt.Equal(fixed) {
					t.Fatalf("occurred_at = %v, want wall clock fallback %v", eq.OccurredAt, fixed)
				}
			}
			if len(tc.in.Geometry.Coordinates) < 3 {
				if eq.Longitude != 0 || eq.Latitude != 0 || eq.DepthKM != 0 {
					t.Fatalf("coords = (%v, %v, %v), want zeros", eq.Longitude, eq.Latitude, eq.DepthKM)
				}
			}
		})
	}
}

func TestNormalize_PartialCoordinates(t *testing.T) {
	t.Parallel()

	// individually non numeric elements default to zero, the rest survive
	eq := Normalize(Feature{Geometry: Geometry{Coordinates: []any{"bad", 37.0, 10.0}}})
	if eq.Longitude != 0 {
		t.Fatalf("longitude = %v, want 0", eq.Longitude)
	}
	if eq.Latitude != 37.0 || eq.DepthKM != 10.0 {
		t.Fatalf("lat/depth = (%v, %v), want (37, 10)", eq.Latitude, eq.DepthKM)
	}
}

func TestNormalizeAll_PreservesOrderAndCount(t *testing.T) {
	t.Parallel()

	in := []Feature{
		{ID: "a"},
		{ID: "b"},
		{ID: "c"},
	}
	out := NormalizeAll(in)
	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	for i, id := range []string{"a", "b", "c"} {
		if out[i].ExternalID != id {
			t.Fatalf("out[%d].ExternalID = %q, want %q", i, out[i].ExternalID, id)
		}
	}
}

func TestNormalize_UniqueIDs(t *testing.T) {
	t.Parallel()

	a := Normalize(Feature{ID: "same"})
	b := Normalize(Feature{ID: "same"})
	if a.ID == b.ID {
		t.Fatalf("local ids must be independent of upstream id")
	}
}
