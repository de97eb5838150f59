package bind

import (
	"net/http/httptest"
	"strings"
	"testing"

	perr "caseflow/internal/platform/errors"
)

type statsPayload struct {
	Mode  string `json:"mode" validate:"omitempty,oneof=all modified followed created"`
	Today string `json:"today" validate:"omitempty,rfc3339"`
	Team  string `json:"team" validate:"required,min=1"`
}

func TestParseJSONHappyPath(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"mode":"followed","today":"2024-07-01T00:00:00Z","team":"team-a"}`))
	r.Header.Set("Content-Type", "application/json")

	got, err := ParseJSON[statsPayload](r)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if got.Mode != "followed" || got.Team != "team-a" {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestParseJSONRejectsBadMode(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"mode":"everything","team":"team-a"}`))
	r.Header.Set("Content-Type", "application/json")

	if _, err := ParseJSON[statsPayload](r); err == nil {
		t.Fatal("expected validation error for unknown mode")
	}
}

func TestParseJSONRejectsBadTimestamp(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"today":"yesterday","team":"team-a"}`))
	r.Header.Set("Content-Type", "application/json")

	_, err := ParseJSON[statsPayload](r)
	if err == nil {
		t.Fatal("expected validation error for bad timestamp")
	}
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestParseJSONRejectsMissingRequired(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"mode":"all"}`))
	r.Header.Set("Content-Type", "application/json")

	if _, err := ParseJSON[statsPayload](r); err == nil {
		t.Fatal("expected validation error for missing team")
	}
}

func TestParseJSONRejectsMalformedBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"mode":`))
	r.Header.Set("Content-Type", "application/json")

	if _, err := ParseJSON[statsPayload](r); err == nil {
		t.Fatal("expected decode error")
	}
}
