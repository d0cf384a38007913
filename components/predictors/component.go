package predictors

import "net/http"

// Component bundles the predictor handler with a fixed configuration so an
// application can construct it once and mount it wherever it serves HTTP.
type Component struct {
	opts Options
}

// New builds a component, applying any option overrides on top of the
// defaults.
func New(fns ...OptionFn) *Component {
	opts := NewOptions(fns...)
	return &Component{opts: opts}
}

// Options exposes the effective configuration. Mutating the returned value
// does not affect the component.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Handler returns the http.Handler serving the predictor directory, field
// descriptors, and inferred forms.
func (c *Component) Handler() http.Handler {
	if c == nil {
		return Handler()
	}
	return HandlerWithOptions(c.opts)
}

// RegisterRoutes mounts the handler on mux under basePath and reports the
// resulting pattern.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if c == nil {
		return RegisterRoutes(mux, basePath)
	}
	return RegisterRoutesWithOptions(mux, basePath, c.opts)
}
