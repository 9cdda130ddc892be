package http

import (
	"errors"
	"strings"
	"testing"
)

func TestHTTPError_MessageCarriesDiagnostics(t *testing.T) {
	err := NewHTTPError("GET", "https://example.com/missing", 404, "not found")

	msg := err.Error()
	for _, want := range []string{"GET", "https://example.com/missing", "404", "not found"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
}

func TestHTTPError_RendersJSONBody(t *testing.T) {
	body := map[string]any{"error": "denied"}
	err := NewHTTPError("POST", "https://example.com/form", 403, body)

	if !strings.Contains(err.Error(), "denied") {
		t.Errorf("Error() = %q, missing body rendering", err.Error())
	}
}

func TestInvalidURLError_Unwrap(t *testing.T) {
	cause := errors.New("missing host")
	err := &InvalidURLError{URL: "nope", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("expected Unwrap to expose the cause")
	}
	if !strings.Contains(err.Error(), "nope") {
		t.Errorf("Error() = %q, missing URL", err.Error())
	}
}

func TestMalformedResponseError_Message(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := &MalformedResponseError{URL: "https://example.com/", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("expected Unwrap to expose the cause")
	}
	if !strings.Contains(err.Error(), "https://example.com/") {
		t.Errorf("Error() = %q, missing URL", err.Error())
	}
}
