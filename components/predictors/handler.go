package predictors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/riskform/go-riskform/pkg/catalog"
	"github.com/riskform/go-riskform/pkg/model"
	"github.com/riskform/go-riskform/pkg/schema"
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

type directoryResponse struct {
	Data []schema.PredictorRef `json:"data"`
}

type fieldEntry struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

type fieldsEntryResponse struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Fields      []fieldEntry `json:"fields"`
}

// Handler builds a net/http handler with default options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds a net/http handler from a pre-constructed
// Options value. The handler serves the predictor directory at the route
// path, plus `{id}/fields` (descriptor set) and `{id}/form` (inferred form
// model) beneath it.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
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

		cat := opts.Catalog
		if cat == nil {
			cat = catalog.New()
		}

		suffix := routeSuffix(r.URL.Path, opts.RoutePath)

		switch {
		case suffix == "":
			writeJSON(w, r, directoryResponse{Data: cat.Predictors()})

		case strings.HasSuffix(suffix, "/fields"):
			id := strings.TrimSuffix(suffix, "/fields")
			s, err := cat.Schema(r.Context(), id)
			if err != nil {
				writeCatalogError(w, err)
				return
			}
			writeJSON(w, r, fieldsResponseFor(s))

		case strings.HasSuffix(suffix, "/form"):
			id := strings.TrimSuffix(suffix, "/form")
			form, err := inferredForm(r.Context(), cat, id)
			if err != nil {
				writeCatalogError(w, err)
				return
			}
			writeJSON(w, r, form)

		default:
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		}
	})
}

func fieldsResponseFor(s schema.PredictorSchema) fieldsEntryResponse {
	resp := fieldsEntryResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Fields:      make([]fieldEntry, 0, len(s.Fields)),
	}
	for _, f := range s.Fields {
		resp.Fields = append(resp.Fields, fieldEntry{
			Name:        f.Name,
			Type:        string(f.Type),
			Description: f.Description,
		})
	}
	return resp
}

func inferredForm(ctx context.Context, cat *catalog.Catalog, id string) (model.FormModel, error) {
	s, err := cat.Schema(ctx, id)
	if err != nil {
		return model.FormModel{}, err
	}
	return model.Infer(s)
}

// routeSuffix returns the path portion after the route path, which may be
// mounted under an arbitrary base path.
func routeSuffix(path, routePath string) string {
	routePath = strings.TrimRight(routePath, "/")
	idx := strings.Index(path, routePath)
	if idx < 0 {
		return strings.Trim(path, "/")
	}
	return strings.Trim(path[idx+len(routePath):], "/")
}

func writeJSON(w http.ResponseWriter, r *http.Request, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func writeCatalogError(w http.ResponseWriter, err error) {
	if errors.Is(err, catalog.ErrNotFound) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}
