package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-formframe/components/subdivisions"
	"github.com/goliatone/go-formframe/pkg/address"
	"github.com/goliatone/go-formframe/pkg/apispec"
	"github.com/goliatone/go-formframe/pkg/renderers/frame"
)

const (
	titleNew   = "New address"
	titleIndex = "Addresses"
	titleShow  = "Address"

	noticeInvalid = "Please correct the highlighted fields."
)

// Server holds the routed handler and its collaborators.
type Server struct {
	opts     Options
	provider subdivisions.Provider
	store    address.Store
	renderer *frame.Renderer
	router   chi.Router
}

// New wires the routes. A missing store, provider or renderer falls back to
// an in-memory store, the embedded dataset and the default templates.
func New(fns ...OptionFn) (*Server, error) {
	opts := NewOptions(fns...)

	s := &Server{opts: opts, provider: opts.Provider, store: opts.Store, renderer: opts.Renderer}
	if s.provider == nil {
		data, err := subdivisions.DefaultDataset()
		if err != nil {
			return nil, fmt.Errorf("server: load dataset: %w", err)
		}
		s.provider = data
	}
	if s.store == nil {
		s.store = address.NewMemoryStore()
	}
	if s.renderer == nil {
		renderer, err := frame.New()
		if err != nil {
			return nil, fmt.Errorf("server: renderer: %w", err)
		}
		s.renderer = renderer
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(opts.Logger, opts.Metrics, s.renderer.Region()))
	r.Use(middleware.Recoverer)
	if opts.Validator != nil {
		r.Use(opts.Validator.Middleware)
	}

	paths := s.renderer.Paths()
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, paths.New, http.StatusFound)
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Get(paths.Index, s.handleIndex)
	r.Get(paths.New, s.handleNew)
	r.Post(paths.Create, s.handleCreate)
	r.Get(strings.TrimRight(paths.Index, "/")+"/{id}", s.handleShow)
	r.Method(http.MethodGet, apispec.Path, apispec.Handler())
	if opts.Metrics != nil {
		r.Method(http.MethodGet, MetricsPath, opts.Metrics.Handler())
	}

	component := subdivisions.New(subdivisions.WithProvider(s.provider))
	if _, err := component.RegisterRoutes(r, opts.APIPath); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	if opts.Assets != nil {
		prefix := strings.TrimRight(opts.RuntimePath, "/") + "/"
		r.Handle(prefix+"*", http.StripPrefix(prefix, http.FileServerFS(opts.Assets)))
	}

	s.router = r
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// formView builds the form for a, with the state options of its country.
func (s *Server) formView(a address.Address, errs address.Errors) frame.View {
	in := frame.FormInput{
		Address:   a,
		Errors:    errs,
		Countries: s.provider.Countries(),
	}
	if len(errs) > 0 {
		in.Notices = []string{noticeInvalid}
	}
	if a.Country != "" {
		in.Subdivisions, in.Known = s.provider.Subdivisions(a.Country)
	}
	return frame.FormView(titleNew, in)
}

// handleNew renders the form prefilled from the query. A region request gets
// only the region; the plain GET is also the no-script fallback, carrying
// every field of the form.
func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	varyOnRegion(w)
	a := address.FromValues(r.URL.Query()).Normalize()
	view := s.formView(a, nil)

	region := RegionFromRequest(r)
	switch region {
	case "":
		s.writePage(w, r, http.StatusOK, frame.PageNew, view)
	case s.renderer.Region():
		s.writeRegion(w, r, view)
	default:
		http.Error(w, fmt.Sprintf("unknown region %q", region), http.StatusNotFound)
	}
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	a := address.FromValues(r.PostForm).Normalize()
	if errs := a.Validate(s.provider); errs != nil {
		s.opts.Logger.Debug("address rejected", "fields", errs.Fields())
		s.writePage(w, r, http.StatusUnprocessableEntity, frame.PageNew, s.formView(a, errs))
		return
	}

	created, err := s.store.Create(r.Context(), a)
	if err != nil {
		s.opts.Logger.Error("create address", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	s.opts.Logger.Info("address created", "id", created.ID, "country", created.Country)
	http.Redirect(w, r, s.showPath(created.ID), http.StatusSeeOther)
}

func (s *Server) handleShow(w http.ResponseWriter, r *http.Request) {
	a, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, address.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.opts.Logger.Error("load address", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	s.writePage(w, r, http.StatusOK, frame.PageShow, frame.DetailView(titleShow, a, s.provider.Countries()))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.List(r.Context())
	if err != nil {
		s.opts.Logger.Error("list addresses", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	view := frame.View{Title: titleIndex}
	for _, a := range items {
		view.Addresses = append(view.Addresses, frame.Link{Href: s.showPath(a.ID), Label: label(a)})
	}
	s.writePage(w, r, http.StatusOK, frame.PageIndex, view)
}

func (s *Server) showPath(id string) string {
	return strings.TrimRight(s.renderer.Paths().Index, "/") + "/" + id
}

func label(a address.Address) string {
	parts := make([]string, 0, 3)
	for _, part := range []string{a.Name, a.City, a.Country} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}

func (s *Server) writePage(w http.ResponseWriter, r *http.Request, status int, page string, view frame.View) {
	var buf bytes.Buffer
	if _, err := s.renderer.RenderPage(page, view, &buf); err != nil {
		s.opts.Logger.Error("render page", "page", page, "path", r.URL.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	s.writeHTML(w, status, buf.Bytes())
}

func (s *Server) writeRegion(w http.ResponseWriter, r *http.Request, view frame.View) {
	var buf bytes.Buffer
	if _, err := s.renderer.RenderRegion(view, &buf); err != nil {
		s.opts.Logger.Error("render region", "path", r.URL.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	s.writeHTML(w, http.StatusOK, buf.Bytes())
}

func (s *Server) writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", s.renderer.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
