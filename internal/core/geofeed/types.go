// Package geofeed holds the pure normalization logic that turns raw feed
// features into event records. No IO happens here.
package geofeed

import (
	"time"

	"github.com/google/uuid"
)

// Envelope is the top level feed payload shape
type Envelope struct {
	Features []Feature `json:"features"`
}

// Feature is one raw feed entry. Fields stay loosely typed on purpose,
// upstream shape quality is not controllable
type Feature struct {
	ID         any            `json:"id"`
	Properties map[string]any `json:"properties"`
	Geometry   Geometry       `json:"geometry"`
}

// Geometry carries the positional coordinate list [lon, lat, depth_km]
type Geometry struct {
	Coordinates []any `json:"coordinates"`
}

// Earthquake is the normalized event record
type Earthquake struct {
	ID         uuid.UUID
	ExternalID string // empty when upstream had none
	Location   string
	Magnitude  float32
	Latitude   float32
	Longitude  float32
	DepthKM    float32
	OccurredAt time.Time
}
