package names

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type handlerResponse struct {
	Data Result `json:"data"`
}

func mustHandler(t *testing.T, fns ...OptionFn) http.Handler {
	t.Helper()
	h, err := Handler(fns...)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	return h
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_ReportsAvailability(t *testing.T) {
	h := mustHandler(t, WithTakenNames([]string{"Bob"}))

	cases := map[string]bool{
		"/api/names/validate?name=Bob":   false,
		"/api/names/validate?name=Alice": true,
		"/api/names/validate":            true,
	}
	for target, want := range cases {
		rec := get(h, target)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected status 200, got %d", target, rec.Code)
		}
		var payload handlerResponse
		if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
			t.Fatalf("%s: failed to decode response: %v", target, err)
		}
		if payload.Data.Valid != want {
			t.Fatalf("%s: expected valid=%v, got %#v", target, want, payload.Data)
		}
	}
}

func TestHandler_RateLimited(t *testing.T) {
	h := mustHandler(t, WithTakenNames(nil), WithRateLimit(0.001, 1))

	if rec := get(h, "/api/names/validate?name=a"); rec.Code != http.StatusOK {
		t.Fatalf("expected first request allowed, got %d", rec.Code)
	}
	rec := get(h, "/api/names/validate?name=b")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
}

func TestHandler_GuardAndMethod(t *testing.T) {
	h := mustHandler(t, WithTakenNames(nil), WithGuard(func(*http.Request) error {
		return StatusError{Code: http.StatusUnauthorized}
	}))
	if rec := get(h, "/api/names/validate?name=a"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}

	open := mustHandler(t, WithTakenNames(nil))
	req := httptest.NewRequest(http.MethodDelete, "/api/names/validate", nil)
	rec := httptest.NewRecorder()
	open.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
}

func TestRegisterRoutes_MountsUnderBasePath(t *testing.T) {
	mux := http.NewServeMux()
	pattern, err := RegisterRoutes(mux, "/mock", WithTakenNames(nil))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if pattern != "/mock/api/names/validate" {
		t.Fatalf("unexpected pattern %q", pattern)
	}
	if rec := get(mux, pattern+"?name=x"); rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}
