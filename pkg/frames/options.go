package frames

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/goliatone/go-formframe/internal/logging"
)

// RegionHeader carries the id of the region a navigation targets.
const RegionHeader = "FG-Region"

type Options struct {
	Client       *http.Client
	Logger       *slog.Logger
	RegionHeader string
	Timeout      time.Duration
	// Scripting mirrors a browser with scripts enabled. When false the
	// document is never enhanced: changes only update values and the
	// fallback submit control stays visible.
	Scripting bool
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		Client:       http.DefaultClient,
		Logger:       logging.NewNop(),
		RegionHeader: RegionHeader,
		Timeout:      10 * time.Second,
		Scripting:    true,
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
	if opts.Client == nil {
		opts.Client = http.DefaultClient
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	if opts.RegionHeader == "" {
		opts.RegionHeader = RegionHeader
	}
	if opts.Timeout < 0 {
		opts.Timeout = 0
	}
	return opts
}

func WithHTTPClient(client *http.Client) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Client = client
	}
}

func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func WithRegionHeader(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RegionHeader = name
	}
}

// WithTimeout bounds every request. Zero disables the bound.
func WithTimeout(timeout time.Duration) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Timeout = timeout
	}
}

func WithScripting(enabled bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Scripting = enabled
	}
}
