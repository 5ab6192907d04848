package server

import (
	"io/fs"
	"log/slog"

	"github.com/goliatone/go-formframe/components/subdivisions"
	"github.com/goliatone/go-formframe/internal/logging"
	"github.com/goliatone/go-formframe/pkg/address"
	"github.com/goliatone/go-formframe/pkg/apispec"
	"github.com/goliatone/go-formframe/pkg/renderers/frame"
)

type Options struct {
	Logger    *slog.Logger
	Store     address.Store
	Provider  subdivisions.Provider
	Renderer  *frame.Renderer
	Validator *apispec.Validator
	// Metrics is exposed on MetricsPath when set.
	Metrics *Metrics
	// Assets is served under RuntimePath when set.
	Assets      fs.FS
	RuntimePath string
	APIPath     string
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		Logger:      logging.NewNop(),
		RuntimePath: "/runtime",
		APIPath:     "/",
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
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	if opts.RuntimePath == "" {
		opts.RuntimePath = "/runtime"
	}
	if opts.APIPath == "" {
		opts.APIPath = "/"
	}
	return opts
}

func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func WithStore(store address.Store) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Store = store
	}
}

func WithProvider(provider subdivisions.Provider) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Provider = provider
	}
}

func WithRenderer(renderer *frame.Renderer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderer = renderer
	}
}

// WithValidator checks documented requests before they reach the handlers.
func WithValidator(validator *apispec.Validator) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Validator = validator
	}
}

func WithAssets(assets fs.FS) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Assets = assets
	}
}

// WithAPIPath mounts the option lookups under base.
func WithAPIPath(base string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.APIPath = base
	}
}

func WithMetrics(metrics *Metrics) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Metrics = metrics
	}
}
