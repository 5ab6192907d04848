package themes

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

var (
	ErrUnknownTheme   = errors.New("themes: unknown theme")
	ErrUnknownVariant = errors.New("themes: unknown variant")
)

// Asset keys the page shell resolves through RendererConfig.AssetURL.
const (
	StylesheetKey = "formframe.stylesheet"
	RuntimeKey    = "formframe.runtime"
)

type registrar interface {
	Register(*theme.Manifest) error
}

// Selector resolves theme/variant pairs against a fixed set of manifests.
// Manifests are validated by a go-theme registry on construction.
type Selector struct {
	mu             sync.RWMutex
	registry       registrar
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*Selector)(nil)

// NewSelector registers manifests; the first one is the default theme unless
// defaultTheme names another.
func NewSelector(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) (*Selector, error) {
	s := &Selector{
		registry:       theme.NewRegistry(),
		manifests:      map[string]*theme.Manifest{},
		defaultTheme:   strings.TrimSpace(defaultTheme),
		defaultVariant: strings.TrimSpace(defaultVariant),
	}
	for _, m := range manifests {
		if err := s.Register(m); err != nil {
			return nil, err
		}
	}
	if s.defaultTheme == "" && len(manifests) > 0 {
		s.defaultTheme = manifests[0].Name
	}
	return s, nil
}

// Register adds a manifest.
func (s *Selector) Register(m *theme.Manifest) error {
	if m == nil || strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("themes: manifest name required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.registry.Register(m); err != nil {
		return fmt.Errorf("themes: register %q: %w", m.Name, err)
	}
	s.manifests[m.Name] = m
	return nil
}

// Select implements theme.ThemeSelector. Empty arguments fall back to the
// defaults; the default variant only applies when the theme declares it.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name = strings.TrimSpace(name)
	if name == "" {
		name = s.defaultTheme
	}
	m, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}

	variant = strings.TrimSpace(variant)
	if variant == "" {
		if _, ok := m.Variants[s.defaultVariant]; ok {
			variant = s.defaultVariant
		}
	} else if _, ok := m.Variants[variant]; !ok {
		return nil, fmt.Errorf("%w: %q for theme %q", ErrUnknownVariant, variant, name)
	}

	return &theme.Selection{Theme: name, Variant: variant, Manifest: m}, nil
}

// Names lists registered theme names.
func (s *Selector) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// RendererConfig flattens a selection: variant tokens, templates and assets
// override the base manifest, and every token is exposed as a "--" CSS
// variable.
func RendererConfig(sel *theme.Selection) *theme.RendererConfig {
	if sel == nil || sel.Manifest == nil {
		return nil
	}
	m := sel.Manifest
	variant, hasVariant := m.Variants[sel.Variant]

	tokens := merge(m.Tokens, nil)
	partials := merge(m.Templates, nil)
	files := merge(m.Assets.Files, nil)
	prefix := m.Assets.Prefix
	if hasVariant {
		tokens = merge(tokens, variant.Tokens)
		partials = merge(partials, variant.Templates)
		files = merge(files, variant.Assets.Files)
		if strings.TrimSpace(variant.Assets.Prefix) != "" {
			prefix = variant.Assets.Prefix
		}
	}

	var cssVars map[string]string
	if len(tokens) > 0 {
		cssVars = make(map[string]string, len(tokens))
		for key, value := range tokens {
			cssVars["--"+strings.TrimPrefix(key, "--")] = value
		}
	}

	return &theme.RendererConfig{
		Theme:    sel.Theme,
		Variant:  sel.Variant,
		Tokens:   tokens,
		CSSVars:  cssVars,
		Partials: partials,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok || file == "" {
				return ""
			}
			if strings.HasPrefix(file, "/") || strings.Contains(file, "://") {
				return file
			}
			return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
		},
	}
}

// CSSVarsStyle renders CSS variables as a :root rule with sorted keys.
func CSSVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

func merge(base, override map[string]string) map[string]string {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(override))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range override {
		out[key] = value
	}
	return out
}
