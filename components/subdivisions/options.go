package subdivisions

import "net/http"

type EmptySearchMode string

const (
	EmptySearchNone EmptySearchMode = "none"
	EmptySearchTop  EmptySearchMode = "top"
)

type GuardFunc func(r *http.Request) error

type Options struct {
	CountriesPath    string
	SubdivisionsPath string
	CountryParam     string
	SearchParam      string
	LimitParam       string
	DefaultLimit     int
	MaxLimit         int
	EmptySearchMode  EmptySearchMode
	Guard            GuardFunc

	Provider Provider
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		CountriesPath:    "/api/countries",
		SubdivisionsPath: "/api/subdivisions",
		CountryParam:     "country",
		SearchParam:      "q",
		LimitParam:       "limit",
		DefaultLimit:     100,
		MaxLimit:         500,
		EmptySearchMode:  EmptySearchTop,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 100
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 500
	}
	if opts.EmptySearchMode == "" {
		opts.EmptySearchMode = EmptySearchTop
	}
	if opts.CountriesPath == "" {
		opts.CountriesPath = "/api/countries"
	}
	if opts.SubdivisionsPath == "" {
		opts.SubdivisionsPath = "/api/subdivisions"
	}
	if opts.CountryParam == "" {
		opts.CountryParam = "country"
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "q"
	}
	if opts.LimitParam == "" {
		opts.LimitParam = "limit"
	}
	return opts
}

func WithCountriesPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.CountriesPath = path
	}
}

func WithSubdivisionsPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SubdivisionsPath = path
	}
}

func WithCountryParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.CountryParam = name
	}
}

func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SearchParam = name
	}
}

func WithLimitParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LimitParam = name
	}
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultLimit = limit
	}
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxLimit = limit
	}
}

func WithEmptySearchMode(mode EmptySearchMode) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.EmptySearchMode = mode
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

// WithProvider replaces the embedded dataset.
func WithProvider(provider Provider) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Provider = provider
	}
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}

func (o Options) provider() (Provider, error) {
	if o.Provider != nil {
		return o.Provider, nil
	}
	return DefaultDataset()
}
