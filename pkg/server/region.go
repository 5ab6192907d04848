package server

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-formframe/pkg/frames"
)

// Headers that name the region a request wants, in order of preference.
var regionHeaders = []string{frames.RegionHeader, "Turbo-Frame", "HX-Target"}

// RegionFromRequest returns the region id a request asks for, or "".
func RegionFromRequest(r *http.Request) string {
	if r == nil {
		return ""
	}
	for _, name := range regionHeaders {
		if value := strings.TrimPrefix(strings.TrimSpace(r.Header.Get(name)), "#"); value != "" {
			return value
		}
	}
	return ""
}

func varyOnRegion(w http.ResponseWriter) {
	for _, name := range regionHeaders {
		w.Header().Add("Vary", name)
	}
}
