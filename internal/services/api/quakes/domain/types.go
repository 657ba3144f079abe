// Package domain holds quakes DTOs and ports
package domain

import "time"

// Earthquake is the wire shape for one stored event
type Earthquake struct {
	ID         string    `json:"id"`
	USGSID     *string   `json:"usgs_id"`
	Magnitude  float32   `json:"magnitude"`
	Location   string    `json:"location"`
	OccurredAt time.Time `json:"occurred_at"`
	Latitude   float32   `json:"latitude"`
	Longitude  float32   `json:"longitude"`
	DepthKM    float32   `json:"depth_km"`
}

// ListInput carries the optional filters plus pagination for a list call
// absent pointers emit no predicate
type ListInput struct {
	MinMagnitude *float32
	MaxMagnitude *float32
	StartTime    *time.Time
	EndTime      *time.Time
	Limit        int
	Offset       int
}

// Pagination describes the window the response covers
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ListResponse is the list endpoint body
type ListResponse struct {
	Data       []Earthquake `json:"data"`
	Pagination Pagination   `json:"pagination"`
}
