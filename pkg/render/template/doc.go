// Package template defines the template rendering contract used by the page
// renderers. The pongo subpackage provides the pongo2 backed implementation.
package template
