// Package http provides http transport for quakes
package http

import (
	stdhttp "net/http"
	"strconv"
	"time"

	"quakewatch/internal/modkit/httpkit"
	perr "quakewatch/internal/platform/errors"
	"quakewatch/internal/services/api/quakes/domain"
	svc "quakewatch/internal/services/api/quakes/service"

	"github.com/go-chi/chi/v5"
)

// Register mounts quakes endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/{id}", h.get)
}

type handlers struct{ svc svc.Service }

func (h *handlers) list(r *stdhttp.Request) (any, error) {
	in, err := parseListInput(r)
	if err != nil {
		return nil, err
	}
	return h.svc.List(r.Context(), in)
}

func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), chi.URLParam(r, "id"))
}

// parseListInput maps query params onto ListInput, absent params stay nil
func parseListInput(r *stdhttp.Request) (domain.ListInput, error) {
	var in domain.ListInput
	q := r.URL.Query()

	if v := q.Get("min_magnitude"); v != "" {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return in, perr.Validationf("min_magnitude must be a number")
		}
		m := float32(f)
		in.MinMagnitude = &m
	}
	if v := q.Get("max_magnitude"); v != "" {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return in, perr.Validationf("max_magnitude must be a number")
		}
		m := float32(f)
		in.MaxMagnitude = &m
	}
	if v := q.Get("start_time"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return in, perr.Validationf("start_time must be an RFC3339 timestamp")
		}
		in.StartTime = &t
	}
	if v := q.Get("end_time"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return in, perr.Validationf("end_time must be an RFC3339 timestamp")
		}
		in.EndTime = &t
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return in, perr.Validationf("limit must be an integer")
		}
		in.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return in, perr.Validationf("offset must be an integer")
		}
		in.Offset = n
	}
	return in, nil
}
