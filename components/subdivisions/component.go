package subdivisions

import "net/http"

// Component bundles the reference data handlers, their configuration and
// routing helpers.
type Component struct {
	opts Options
}

// New constructs a new component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	opts := NewOptions(fns...)
	return &Component{opts: opts}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Provider returns the configured provider, falling back to the embedded
// dataset.
func (c *Component) Provider() (Provider, error) {
	return c.Options().provider()
}

// CountriesHandler returns the countries handler.
func (c *Component) CountriesHandler() http.Handler {
	return CountriesHandlerWithOptions(c.Options())
}

// SubdivisionsHandler returns the subdivisions handler.
func (c *Component) SubdivisionsHandler() http.Handler {
	return SubdivisionsHandlerWithOptions(c.Options())
}

// RegisterRoutes registers both handlers under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (Routes, error) {
	return RegisterRoutesWithOptions(mux, basePath, c.Options())
}
