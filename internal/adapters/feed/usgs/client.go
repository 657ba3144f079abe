// Package usgs provides a client for the USGS GeoJSON earthquake feed
package usgs

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"quakewatch/internal/core/geofeed"
	perr "quakewatch/internal/platform/errors"
	"quakewatch/internal/platform/logger"
)

const (
	// FeedURLDefault is the all-day summary feed
	FeedURLDefault = "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_day.geojson"

	defaultTimeout = 10 * time.Second
	defaultUA      = "quakewatch-ingest"

	// maxBody bounds the decoded payload, the daily feed stays well under this
	maxBody = 32 << 20
)

// Options configures the Client
type Options struct {
	FeedURL   string
	UserAgent string
	Timeout   time.Duration
}

// Client fetches and decodes the feed. It does not retry, backoff is the
// ingestion loop's concern
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.FeedURL == "" {
		o.FeedURL = FeedURLDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("usgs"),
	}
}

// Fetch retrieves the feed and returns its raw features
func (c *Client) Fetch(ctx context.Context) ([]geofeed.Feature, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.FeedURL, nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeFetch, "usgs new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/geo+json, application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeFetch, "usgs fetch failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, perr.Fetchf("usgs feed returned status %d", resp.StatusCode)
	}

	var env geofeed.Envelope
	dec := json.NewDecoder(io.LimitReader(resp.Body, maxBody))
	if err := dec.Decode(&env); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeFetch, "usgs payload decode failed")
	}
	if env.Features == nil {
		return nil, perr.Fetchf("usgs payload missing features array")
	}

	c.log.Debug().
		Int("features", len(env.Features)).
		Dur("elapsed", time.Since(start)).
		Msg("feed fetched")

	return env.Features, nil
}
