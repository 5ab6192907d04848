package subdivisions

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMountPaths_JoinsBasePath(t *testing.T) {
	got := MountPaths("admin")
	if got.Countries != "/admin/api/countries" || got.Subdivisions != "/admin/api/subdivisions" {
		t.Fatalf("unexpected mount paths: %#v", got)
	}
	got = MountPaths("/admin/", WithSubdivisionsPath("api/states"))
	if got.Subdivisions != "/admin/api/states" {
		t.Fatalf("unexpected mount path: %q", got.Subdivisions)
	}
}

func TestRegisterRoutes_RegistersHandlers(t *testing.T) {
	mux := http.NewServeMux()
	routes, err := New(WithProvider(stubProvider{})).RegisterRoutes(mux, "/")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for _, target := range []string{routes.Countries, routes.Subdivisions + "?country=CA"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected status 200, got %d", target, rec.Code)
		}
	}
}

func TestRegisterRoutes_RejectsCollisions(t *testing.T) {
	_, err := RegisterRoutes(http.NewServeMux(), "", WithCountriesPath("/api/x"), WithSubdivisionsPath("/api/x"))
	if err == nil {
		t.Fatalf("expected collision error")
	}
	if _, err := RegisterRoutes(nil, ""); err == nil {
		t.Fatalf("expected missing mux error")
	}
}
