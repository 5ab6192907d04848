package testsupport

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/goliatone/go-formframe/pkg/dom"
)

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// MustParseDocument parses markup into a dom.Document, failing the test on
// error.
func MustParseDocument(t *testing.T, markup string) *dom.Document {
	t.Helper()

	doc, err := dom.ParseString(markup)
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	return doc
}

// MustFirst returns the first element matching selector, failing the test
// when nothing matches.
func MustFirst(t *testing.T, doc *dom.Document, selector string) *dom.Element {
	t.Helper()

	el, err := doc.First(selector)
	if err != nil {
		t.Fatalf("query %q: %v", selector, err)
	}
	if el == nil {
		t.Fatalf("no element matches %q", selector)
	}
	return el
}

// OptionValues lists the option values of the select matching selector.
func OptionValues(t *testing.T, doc *dom.Document, selector string) []string {
	t.Helper()

	options := MustFirst(t, doc, selector).Options()
	out := make([]string, 0, len(options))
	for _, opt := range options {
		out = append(out, opt.Value)
	}
	return out
}

// CaptureTemplateOutput runs render against a buffer and returns both the
// rendered string and what was written.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
