package themes

import theme "github.com/goliatone/go-theme"

// DefaultName is the built-in theme.
const DefaultName = "formframe"

// DefaultManifest describes the built-in light theme and its dark variant.
// Assets resolve under /runtime, where the server mounts the runtime bundle.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"ff-bg":     "#ffffff",
			"ff-fg":     "#1f2328",
			"ff-accent": "#0969da",
			"ff-error":  "#cf222e",
			"ff-border": "#d0d7de",
		},
		Templates: map[string]string{
			"page.layout": "layout.tpl",
			"page.form":   "form.tpl",
		},
		Assets: theme.Assets{
			Prefix: "/runtime",
			Files: map[string]string{
				StylesheetKey: "formframe.css",
				RuntimeKey:    "formframe.js",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"ff-bg":     "#0d1117",
					"ff-fg":     "#e6edf3",
					"ff-accent": "#4493f8",
					"ff-border": "#30363d",
				},
			},
		},
	}
}

// NewDefaultSelector returns a selector holding only the built-in theme.
func NewDefaultSelector(variant string) (*Selector, error) {
	return NewSelector(DefaultName, variant, DefaultManifest())
}
