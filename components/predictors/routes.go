package predictors

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the subset of *http.ServeMux the component needs; accepting the
// interface keeps it mountable on any router exposing Handle.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath computes where the component would be reachable if registered
// under basePath with the given options, without registering anything.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.RoutePath)
}

// RegisterRoutes mounts the predictor handler under basePath on mux.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	opts := NewOptions(fns...)
	return RegisterRoutesWithOptions(mux, basePath, opts)
}

// RegisterRoutesWithOptions mounts the handler using an already-assembled
// Options value. Both the bare pattern and its slash-suffixed form are
// registered: the first serves the directory, the second lets the
// per-predictor fields and form subroutes reach the same handler.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("predictors: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	pattern := mountPath(basePath, opts.RoutePath)
	handler := HandlerWithOptions(opts)
	mux.Handle(pattern, handler)
	mux.Handle(pattern+"/", handler)
	return pattern, nil
}

// mountPath joins basePath and routePath into a single normalized pattern.
// Trailing slashes are stripped so the slash-suffixed registration above
// stays unambiguous.
func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}
	routePath = strings.TrimRight(routePath, "/")

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
