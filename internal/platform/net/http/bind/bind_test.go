package bind

import (
	"net/http/httptest"
	"strings"
	"testing"

	perr "quakewatch/internal/platform/errors"
)

type sample struct {
	Name  string `json:"name" validate:"required"`
	Limit int    `json:"limit" validate:"min=1,max=500"`
}

func TestStruct_Valid(t *testing.T) {
	t.Parallel()

	if err := Struct(sample{Name: "quake", Limit: 50}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStruct_FieldAndMessage(t *testing.T) {
	t.Parallel()

	err := Struct(sample{Name: "quake", Limit: 9000})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if perr.CodeOf(err) != perr.ErrorCodeValidation {
		t.Fatalf("code = %v, want validation", perr.CodeOf(err))
	}
	// json tag name and the short max translation
	if !strings.Contains(err.Error(), "limit must be at most 500") {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestParseJSON_OK(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"quake","limit":10}`))
	got, err := ParseJSON[sample](r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "quake" || got.Limit != 10 {
		t.Fatalf("got = %+v", got)
	}
}

func TestParseJSON_Rejects(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{"name":`},
		{"unknown field", `{"name":"quake","limit":10,"extra":1}`},
		{"trailing data", `{"name":"quake","limit":10}{}`},
		{"fails validation", `{"name":"","limit":10}`},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest("POST", "/", strings.NewReader(tc.body))
			if _, err := ParseJSON[sample](r); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParseJSON_EmptyBodyOnGet(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("GET", "/", nil)
	got, err := ParseJSON[sample](r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "" {
		t.Fatalf("got = %+v", got)
	}
}
