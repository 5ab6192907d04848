package subdivisions

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type handlerResponse struct {
	Data []Option `json:"data"`
}

type stubProvider struct{}

func (stubProvider) Countries() []Option {
	return []Option{{Value: "CA", Label: "Canada"}, {Value: "VA", Label: "Vatican City"}}
}

func (stubProvider) Subdivisions(country string) ([]Option, bool) {
	switch country {
	case "CA":
		return []Option{{Value: "AB", Label: "Alberta"}, {Value: "BC", Label: "British Columbia"}}, true
	case "VA":
		return nil, true
	default:
		return nil, false
	}
}

func serve(t *testing.T, h http.Handler, method, target string) (*httptest.ResponseRecorder, handlerResponse) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var payload handlerResponse
	if rec.Code == http.StatusOK && method == http.MethodGet {
		if ct := strings.TrimSpace(rec.Header().Get("Content-Type")); !strings.HasPrefix(ct, "application/json") {
			t.Fatalf("expected JSON content-type, got %q", ct)
		}
		if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return rec, payload
}

func TestCountriesHandler_ListsAllByDefault(t *testing.T) {
	rec, payload := serve(t, CountriesHandler(WithProvider(stubProvider{})), http.MethodGet, "/api/countries")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if len(payload.Data) != 2 || payload.Data[0].Value != "CA" {
		t.Fatalf("unexpected payload: %#v", payload)
	}
}

func TestSubdivisionsHandler_KnownCountry(t *testing.T) {
	rec, payload := serve(t, SubdivisionsHandler(WithProvider(stubProvider{})), http.MethodGet, "/api/subdivisions?country=CA&q=brit")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if len(payload.Data) != 1 || payload.Data[0].Label != "British Columbia" {
		t.Fatalf("unexpected payload: %#v", payload)
	}
}

func TestSubdivisionsHandler_EmptySetIsEmptyArray(t *testing.T) {
	rec, payload := serve(t, SubdivisionsHandler(WithProvider(stubProvider{})), http.MethodGet, "/api/subdivisions?country=VA")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if payload.Data == nil || len(payload.Data) != 0 {
		t.Fatalf("expected empty data array, got %#v", payload.Data)
	}
}

func TestSubdivisionsHandler_Errors(t *testing.T) {
	h := SubdivisionsHandler(WithProvider(stubProvider{}))

	if rec, _ := serve(t, h, http.MethodGet, "/api/subdivisions"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if rec, _ := serve(t, h, http.MethodGet, "/api/subdivisions?country=ZZ"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	if rec, _ := serve(t, h, http.MethodPost, "/api/subdivisions?country=CA"); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
}

func TestSubdivisionsHandler_DefaultDataset(t *testing.T) {
	rec, payload := serve(t, SubdivisionsHandler(), http.MethodGet, "/api/subdivisions?country=ca&limit=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if len(payload.Data) != 1 || payload.Data[0].Value != "AB" {
		t.Fatalf("unexpected payload: %#v", payload)
	}
}

func TestHandler_GuardRejects(t *testing.T) {
	h := CountriesHandler(
		WithProvider(stubProvider{}),
		WithGuard(func(r *http.Request) error {
			return StatusError{Code: http.StatusUnauthorized}
		}),
	)
	if rec, _ := serve(t, h, http.MethodGet, "/api/countries"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestHandler_HeadHasNoBody(t *testing.T) {
	rec, _ := serve(t, CountriesHandler(WithProvider(stubProvider{})), http.MethodHead, "/api/countries")
	if rec.Code != http.StatusOK || rec.Body.Len() != 0 {
		t.Fatalf("expected empty 200, got %d with %d bytes", rec.Code, rec.Body.Len())
	}
}
