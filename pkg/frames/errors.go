package frames

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrRegionMissing is returned when the region named by a navigation is
	// absent from the current document or from the response.
	ErrRegionMissing = errors.New("frames: region missing")
	// ErrSuperseded marks a navigation cancelled by a newer one for the same
	// region. Wait does not report it.
	ErrSuperseded = errors.New("frames: navigation superseded")
	// ErrNoDocument is returned when an operation needs a loaded document.
	ErrNoDocument = errors.New("frames: no document loaded")
)

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("frames: %s: %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// StatusCode returns the response status.
func (e *StatusError) StatusCode() int {
	if e == nil || e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}
