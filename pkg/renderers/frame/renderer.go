package frame

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formframe/pkg/render"
	rendertemplate "github.com/goliatone/go-formframe/pkg/render/template"
	"github.com/goliatone/go-formframe/pkg/render/template/pongo"
	"github.com/goliatone/go-formframe/pkg/themes"
)

// Page templates.
const (
	PageNew   = "new"
	PageShow  = "show"
	PageIndex = "index"

	regionTemplate = "region"
)

// DefaultRegion is the id of the state region.
const DefaultRegion = "address-state"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templatesDir     string
	templateRenderer rendertemplate.TemplateRenderer
	theme            *theme.RendererConfig
	runtimeSrc       string
	region           string
	paths            Paths
	hidden           map[string]string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk, falling back to
// the embedded bundle for templates the directory does not hold.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templatesDir = strings.TrimSpace(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTheme applies a resolved theme to every page.
func WithTheme(rc *theme.RendererConfig) Option {
	return func(cfg *config) {
		cfg.theme = rc
	}
}

// WithRuntimeSrc overrides the script the page shell loads.
func WithRuntimeSrc(src string) Option {
	return func(cfg *config) {
		cfg.runtimeSrc = strings.TrimSpace(src)
	}
}

// WithRegion renames the state region.
func WithRegion(id string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			cfg.region = trimmed
		}
	}
}

// WithPaths sets the links pages point to.
func WithPaths(paths Paths) Option {
	return func(cfg *config) {
		cfg.paths = paths
	}
}

// WithHiddenFields adds hidden inputs to every rendered form.
func WithHiddenFields(fields ...render.HiddenField) Option {
	return func(cfg *config) {
		cfg.hidden = render.MergeHiddenFields(cfg.hidden, fields...)
	}
}

// Renderer renders address pages and the state region.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	theme      Theme
	runtimeSrc string
	region     string
	paths      Paths
	hidden     []render.HiddenField
}

// New constructs the renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		region:     DefaultRegion,
		paths: Paths{
			Index:  "/addresses",
			New:    "/addresses/new",
			Create: "/addresses",
		},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(
			pongo.WithName("formframe.frame"),
			pongo.WithBaseDir(cfg.templatesDir),
			pongo.WithFS(cfg.templateFS),
		)
		if err != nil {
			return nil, fmt.Errorf("frame renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	r := &Renderer{
		templates:  renderer,
		runtimeSrc: cfg.runtimeSrc,
		region:     cfg.region,
		paths:      cfg.paths,
		hidden:     render.SortedHiddenFields(cfg.hidden),
	}
	if rc := cfg.theme; rc != nil {
		r.theme = Theme{
			Name:    rc.Theme,
			Variant: rc.Variant,
			CSS:     themes.CSSVarsStyle(rc.CSSVars),
		}
		if rc.AssetURL != nil {
			if href := rc.AssetURL(themes.StylesheetKey); href != "" {
				r.theme.Stylesheets = []string{href}
			}
			if r.runtimeSrc == "" {
				r.runtimeSrc = rc.AssetURL(themes.RuntimeKey)
			}
		}
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "frame"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Region returns the id of the state region.
func (r *Renderer) Region() string {
	return r.region
}

// Paths returns the configured links.
func (r *Renderer) Paths() Paths {
	return r.paths
}

// RenderPage renders a full page. Fields of view left empty are filled from
// the renderer's configuration.
func (r *Renderer) RenderPage(page string, view View, out ...io.Writer) (string, error) {
	if strings.TrimSpace(page) == "" {
		return "", errors.New("frame renderer: page name required")
	}
	return r.render(page, view, out)
}

// RenderRegion renders only the state region of view.
func (r *Renderer) RenderRegion(view View, out ...io.Writer) (string, error) {
	return r.render(regionTemplate, view, out)
}

func (r *Renderer) render(name string, view View, out []io.Writer) (string, error) {
	if r.templates == nil {
		return "", errors.New("frame renderer: template renderer is nil")
	}
	result, err := r.templates.RenderTemplate(name, r.complete(view), out...)
	if err != nil {
		return "", fmt.Errorf("frame renderer: render %s: %w", name, err)
	}
	return result, nil
}

func (r *Renderer) complete(view View) View {
	if view.Region == "" {
		view.Region = r.region
	}
	if view.Paths == (Paths{}) {
		view.Paths = r.paths
	}
	if view.Theme.Name == "" {
		view.Theme = r.theme
	}
	if view.Hidden == nil {
		view.Hidden = r.hidden
	}
	if view.RuntimeSrc == "" {
		view.RuntimeSrc = r.runtimeSrc
	}
	return view
}
