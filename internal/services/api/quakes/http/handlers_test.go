package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	perr "quakewatch/internal/platform/errors"
	phttp "quakewatch/internal/platform/net/http"
	"quakewatch/internal/services/api/quakes/domain"

	"github.com/go-chi/chi/v5"
)

type fakeService struct {
	list    domain.ListResponse
	listErr error
	one     domain.Earthquake
	oneErr  error
	gotIn   domain.ListInput
	gotID   string
}

func (f *fakeService) List(ctx context.Context, in domain.ListInput) (domain.ListResponse, error) {
	f.gotIn = in
	return f.list, f.listErr
}

func (f *fakeService) Get(ctx context.Context, id string) (domain.Earthquake, error) {
	f.gotID = id
	return f.one, f.oneErr
}

func newTestServer(t *testing.T, fs *fakeService) *httptest.Server {
	t.Helper()
	m := chi.NewRouter()
	phttp.AdaptChi(m).Route("/earthquakes", func(sub phttp.Router) {
		Register(sub, fs)
	})
	srv := httptest.NewServer(m)
	t.Cleanup(srv.Close)
	return srv
}

func TestList_OK(t *testing.T) {
	t.Parallel()

	usgs := "us1"
	fs := &fakeService{list: domain.ListResponse{
		Data: []domain.Earthquake{{
			ID:         "11111111-1111-1111-1111-111111111111",
			USGSID:     &usgs,
			Magnitude:  4.2,
			Location:   "Testville",
			OccurredAt: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		}},
		Pagination: domain.Pagination{Limit: 50, Offset: 0, Total: 1},
	}}
	srv := newTestServer(t, fs)

	res, err := stdhttp.Get(srv.URL + "/earthquakes")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}

	var body struct {
		Data []struct {
			USGSID     string  `json:"usgs_id"`
			Magnitude  float32 `json:"magnitude"`
			Location   string  `json:"location"`
			OccurredAt string  `json:"occurred_at"`
		} `json:"data"`
		Pagination struct {
			Limit  int `json:"limit"`
			Offset int `json:"offset"`
			Total  int `json:"total"`
		} `json:"pagination"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data) != 1 || body.Data[0].USGSID != "us1" || body.Data[0].Location != "Testville" {
		t.Fatalf("data = %+v", body.Data)
	}
	if body.Pagination.Total != 1 || body.Pagination.Limit != 50 {
		t.Fatalf("pagination = %+v", body.Pagination)
	}
}

func TestList_QueryParamsParsed(t *testing.T) {
	t.Parallel()

	fs := &fakeService{}
	srv := newTestServer(t, fs)

	res, err := stdhttp.Get(srv.URL + "/earthquakes?min_magnitude=2.5&start_time=2021-01-01T00:00:00Z&limit=10&offset=20")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}
	if fs.gotIn.MinMagnitude == nil || *fs.gotIn.MinMagnitude != 2.5 {
		t.Fatalf("min_magnitude = %v", fs.gotIn.MinMagnitude)
	}
	want := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	if fs.gotIn.StartTime == nil || !fs.gotIn.StartTime.Equal(want) {
		t.Fatalf("start_time = %v", fs.gotIn.StartTime)
	}
	if fs.gotIn.Limit != 10 || fs.gotIn.Offset != 20 {
		t.Fatalf("limit/offset = %d/%d", fs.gotIn.Limit, fs.gotIn.Offset)
	}
	if fs.gotIn.MaxMagnitude != nil || fs.gotIn.EndTime != nil {
		t.Fatalf("absent params must stay nil: %+v", fs.gotIn)
	}
}

func TestList_BadParams(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		query string
	}{
		{"min_magnitude not a number", "?min_magnitude=abc"},
		{"max_magnitude not a number", "?max_magnitude=1.2.3"},
		{"start_time not rfc3339", "?start_time=yesterday"},
		{"end_time not rfc3339", "?end_time=2021-13-99"},
		{"limit not an integer", "?limit=ten"},
		{"offset not an integer", "?offset=1.5"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			fs := &fakeService{}
			srv := newTestServer(t, fs)

			res, err := stdhttp.Get(srv.URL + "/earthquakes" + tc.query)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			defer res.Body.Close()

			if res.StatusCode != stdhttp.StatusBadRequest {
				t.Fatalf("status = %d, want 400", res.StatusCode)
			}
			var env phttp.ErrorEnvelope
			if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if env.StatusCode != stdhttp.StatusBadRequest || env.Error == "" {
				t.Fatalf("envelope = %+v", env)
			}
		})
	}
}

func TestGet_NotFound(t *testing.T) {
	t.Parallel()

	fs := &fakeService{oneErr: perr.NotFoundf("earthquake not found")}
	srv := newTestServer(t, fs)

	res, err := stdhttp.Get(srv.URL + "/earthquakes/11111111-1111-1111-1111-111111111111")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", res.StatusCode)
	}
}

func TestGet_InvalidID(t *testing.T) {
	t.Parallel()

	fs := &fakeService{oneErr: perr.Validationf("invalid id")}
	srv := newTestServer(t, fs)

	res, err := stdhttp.Get(srv.URL + "/earthquakes/not-a-uuid")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", res.StatusCode)
	}
	if fs.gotID != "not-a-uuid" {
		t.Fatalf("path id = %q", fs.gotID)
	}
}

func TestGet_BareRecordBody(t *testing.T) {
	t.Parallel()

	fs := &fakeService{one: domain.Earthquake{
		ID:        "11111111-1111-1111-1111-111111111111",
		Magnitude: 5.1,
		Location:  "Offshore",
	}}
	srv := newTestServer(t, fs)

	res, err := stdhttp.Get(srv.URL + "/earthquakes/11111111-1111-1111-1111-111111111111")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer res.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// single records are not wrapped in a data envelope
	if _, ok := body["data"]; ok {
		t.Fatalf("single get must be a bare record: %v", body)
	}
	if body["location"] != "Offshore" {
		t.Fatalf("body = %v", body)
	}
}
