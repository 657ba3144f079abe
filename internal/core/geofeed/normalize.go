package geofeed

import (
	"encoding/json"
	"time"

	ptime "quakewatch/internal/platform/time"

	"github.com/google/uuid"
)

// now is a seam for tests that pin the wall clock fallback
var now = time.Now

// Normalize produces exactly one record per feature, it never fails.
// Missing or malformed fields degrade to defaults so one bad feature
// cannot abort a batch
func Normalize(f Feature) Earthquake {
	eq := Earthquake{
		ID:       uuid.New(),
		Location: "unknown",
	}

	if s, ok := f.ID.(string); ok && s != "" {
		eq.ExternalID = s
	}

	if f.Properties != nil {
		if v, ok := asFloat(f.Properties["mag"]); ok {
			eq.Magnitude = float32(v)
		}
		if s, ok := f.Properties["place"].(string); ok {
			eq.Location = s
		}
	}

	eq.OccurredAt = occurredAt(f.Properties)

	// coordinates are positional [lon, lat, depth_km], all three present or
	// all three default
	if c := f.Geometry.Coordinates; len(c) >= 3 {
		if v, ok := asFloat(c[0]); ok {
			eq.Longitude = float32(v)
		}
		if v, ok := asFloat(c[1]); ok {
			eq.Latitude = float32(v)
		}
		if v, ok := asFloat(c[2]); ok {
			eq.DepthKM = float32(v)
		}
	}

	return eq
}

// NormalizeAll maps every feature through Normalize preserving order
func NormalizeAll(fs []Feature) []Earthquake {
	out := make([]Earthquake, 0, len(fs))
	for _, f := range fs {
		out = append(out, Normalize(f))
	}
	return out
}

func occurredAt(props map[string]any) time.Time {
	if props != nil {
		if v, ok := asFloat(props["time"]); ok {
			return ptime.FromEpochMillis(int64(v))
		}
	}
	return now().UTC()
}

// asFloat accepts the numeric shapes a decoded JSON document can carry
func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
