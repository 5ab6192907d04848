package apispec

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"

	"github.com/goliatone/go-formframe/internal/logging"
)

// Path is where Handler is mounted.
const Path = "/openapi.yaml"

//go:embed openapi.yaml
var document []byte

// Raw returns a copy of the embedded document.
func Raw() []byte {
	return append([]byte(nil), document...)
}

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*openapi3.T, error) {
	return LoadData(ctx, document)
}

// LoadData parses and validates an OpenAPI document.
func LoadData(ctx context.Context, data []byte) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("apispec: load document: %w", err)
	}
	if doc.Paths == nil || doc.Paths.Len() == 0 {
		return nil, errors.New("apispec: document does not contain any paths")
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("apispec: validate: %w", err)
	}
	return doc, nil
}

// Handler serves the embedded document.
func Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write(document)
	})
}

// Validator checks requests against the operations of a document. Request
// bodies are not validated: form submissions are validated by the handlers so
// errors can be rendered next to their fields.
type Validator struct {
	router routers.Router
	logger *slog.Logger
}

type ValidatorOption func(*Validator)

func WithLogger(logger *slog.Logger) ValidatorOption {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// NewValidator builds a validator for doc.
func NewValidator(doc *openapi3.T, fns ...ValidatorOption) (*Validator, error) {
	if doc == nil {
		return nil, errors.New("apispec: document is nil")
	}
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("apispec: build router: %w", err)
	}
	v := &Validator{router: router, logger: logging.NewNop()}
	for _, fn := range fns {
		if fn != nil {
			fn(v)
		}
	}
	return v, nil
}

// Validate checks r. Requests that match no documented operation pass.
func (v *Validator) Validate(r *http.Request) error {
	route, params, err := v.router.FindRoute(r)
	if err != nil {
		if undocumented(err) {
			return nil
		}
		return fmt.Errorf("apispec: find route: %w", err)
	}
	input := &openapi3filter.RequestValidationInput{
		Request:    r,
		PathParams: params,
		Route:      route,
		Options: &openapi3filter.Options{
			ExcludeRequestBody: true,
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
	}
	return openapi3filter.ValidateRequest(r.Context(), input)
}

// undocumented reports whether err says the request matches no operation.
// The router returns a *routers.RouteError carrying the sentinel text.
func undocumented(err error) bool {
	if errors.Is(err, routers.ErrPathNotFound) || errors.Is(err, routers.ErrMethodNotAllowed) {
		return true
	}
	var routeErr *routers.RouteError
	if !errors.As(err, &routeErr) {
		return false
	}
	switch routeErr.Reason {
	case routers.ErrPathNotFound.Error(), routers.ErrMethodNotAllowed.Error():
		return true
	}
	return false
}

type errorResponse struct {
	Error string `json:"error"`
}

// Middleware rejects invalid requests with a 400 JSON error.
func (v *Validator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := v.Validate(r); err != nil {
			v.logger.Info("apispec: request rejected", "method", r.Method, "path", r.URL.Path, "error", err)
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(errorResponse{Error: err.Error()})
			return
		}
		next.ServeHTTP(w, r)
	})
}
