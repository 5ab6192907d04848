package subdivisions

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type optionsResponse struct {
	Data []Option `json:"data"`
}

// CountriesHandler builds a handler listing countries with default options
// plus any overrides.
func CountriesHandler(fns ...OptionFn) http.Handler {
	return CountriesHandlerWithOptions(NewOptions(fns...))
}

// SubdivisionsHandler builds a handler listing the subdivisions of the
// country named by the country query parameter.
func SubdivisionsHandler(fns ...OptionFn) http.Handler {
	return SubdivisionsHandlerWithOptions(NewOptions(fns...))
}

// CountriesHandlerWithOptions builds the countries handler from a
// pre-constructed Options value.
func CountriesHandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return optionsHandler(opts, func(r *http.Request, provider Provider) ([]Option, error) {
		return provider.Countries(), nil
	})
}

// SubdivisionsHandlerWithOptions builds the subdivisions handler from a
// pre-constructed Options value. A missing country parameter is a 400, an
// unknown country a 404; a known country without subdivisions returns an
// empty data array.
func SubdivisionsHandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return optionsHandler(opts, func(r *http.Request, provider Provider) ([]Option, error) {
		country := strings.TrimSpace(r.URL.Query().Get(opts.CountryParam))
		if country == "" {
			return nil, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("subdivisions: missing %s parameter", opts.CountryParam)}
		}
		subs, ok := provider.Subdivisions(country)
		if !ok {
			return nil, StatusError{Code: http.StatusNotFound, Err: fmt.Errorf("subdivisions: unknown country %q", country)}
		}
		return subs, nil
	})
}

type lookupFunc func(r *http.Request, provider Provider) ([]Option, error)

func optionsHandler(opts Options, lookup lookupFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		provider, err := opts.provider()
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		options, err := lookup(r, provider)
		if err != nil {
			writeStatusError(w, err, http.StatusInternalServerError)
			return
		}

		query := r.URL.Query().Get(opts.SearchParam)
		limit := parseInt(r.URL.Query().Get(opts.LimitParam))

		results := Search(options, query, limit, opts)
		if results == nil {
			results = []Option{}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}

		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(true)
		_ = enc.Encode(optionsResponse{Data: results})
	})
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	writeStatusError(w, err, http.StatusForbidden)
}

func writeStatusError(w http.ResponseWriter, err error, fallback int) {
	code := fallback
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = fallback
		}
	}
	http.Error(w, http.StatusText(code), code)
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
