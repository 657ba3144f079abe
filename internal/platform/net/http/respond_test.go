package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	perr "quakewatch/internal/platform/errors"
)

func TestResponseWrite_BareSuccessBody(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)

	OK(map[string]any{"magnitude": 4.2}).write(rec, req)

	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content type = %q", ct)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["magnitude"] != 4.2 {
		t.Fatalf("body = %v", body)
	}
	// success responses are never wrapped in an error envelope
	if _, ok := body["status_code"]; ok {
		t.Fatalf("unexpected envelope: %v", body)
	}
}

func TestResponseWrite_ErrorEnvelope(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation maps to 400", perr.Validationf("limit must be an integer"), stdhttp.StatusBadRequest},
		{"not found maps to 404", perr.NotFoundf("earthquake missing"), stdhttp.StatusNotFound},
		{"db maps to 500", perr.DBf("query exploded"), stdhttp.StatusInternalServerError},
		{"fetch maps to 502", perr.Fetchf("upstream down"), stdhttp.StatusBadGateway},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/", nil)

			Error(tc.err).write(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			var env ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if env.StatusCode != tc.wantStatus {
				t.Fatalf("envelope status_code = %d", env.StatusCode)
			}
			if env.Status != stdhttp.StatusText(tc.wantStatus) {
				t.Fatalf("envelope status = %q", env.Status)
			}
			if env.Error == "" {
				t.Fatal("envelope error text must be set")
			}
		})
	}
}

func TestResponseWrite_NoContent(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/", nil)

	NoContent().write(rec, req)

	if rec.Code != stdhttp.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("body = %q, want empty", rec.Body.String())
	}
}

func TestResponseWrite_HeaderOverrides(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)

	resp := OK("ok")
	resp.Header = stdhttp.Header{"X-Custom": []string{"yes"}}
	resp.write(rec, req)

	if rec.Header().Get("X-Custom") != "yes" {
		t.Fatal("custom header dropped")
	}
}
