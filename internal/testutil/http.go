package testutil

import (
	"encoding/json"
	"net/http"
	"testing"
)

// DecodeJSON decodes the response body into v and closes it
func DecodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()

	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
}

// AssertJSONError checks that resp is an API error with the given status
// and {"error": message} body
func AssertJSONError(t *testing.T, resp *http.Response, status int, message string) {
	t.Helper()

	var body struct {
		Error string `json:"error"`
	}
	DecodeJSON(t, resp, &body)

	if resp.StatusCode != status {
		t.Errorf("Status = %d, want %d", resp.StatusCode, status)
	}
	if body.Error != message {
		t.Errorf("error = %q, want %q", body.Error, message)
	}
}
