package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// RegionAttr marks an element as an independently replaceable region. The
// region is identified by its id attribute.
const RegionAttr = "data-fg-region"

// Document is a parsed HTML document.
type Document struct {
	root *html.Node
}

// Parse reads a full HTML document. Fragments are accepted too; the parser
// wraps them in the implied html/head/body elements.
func Parse(r io.Reader) (*Document, error) {
	if r == nil {
		return nil, fmt.Errorf("dom: missing reader")
	}
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseString parses markup held in memory.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// Root returns the document node wrapped as an element.
func (d *Document) Root() *Element {
	if d == nil {
		return nil
	}
	return wrap(d.root)
}

// Query returns every element matching selector in document order.
func (d *Document) Query(selector string) ([]*Element, error) {
	if d == nil {
		return nil, nil
	}
	return d.Root().Query(selector)
}

// First returns the first element matching selector.
func (d *Document) First(selector string) (*Element, error) {
	if d == nil {
		return nil, nil
	}
	return d.Root().First(selector)
}

// ByID returns the element with the given id.
func (d *Document) ByID(id string) (*Element, bool) {
	id = strings.TrimSpace(id)
	if d == nil || id == "" {
		return nil, false
	}
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && attr(n, "id") == id {
			found = n
			return false
		}
		return true
	})
	if found == nil {
		return nil, false
	}
	return wrap(found), true
}

// Region returns the element marked with RegionAttr whose id matches.
func (d *Document) Region(id string) (*Element, bool) {
	el, ok := d.ByID(id)
	if !ok || !el.HasAttr(RegionAttr) {
		return nil, false
	}
	return el, true
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	if d == nil {
		return nil
	}
	return html.Render(w, d.root)
}

// String renders the document, returning an empty string on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

var (
	selectorMu    sync.RWMutex
	selectorCache = map[string]cascadia.SelectorGroup{}
)

func compile(selector string) (cascadia.SelectorGroup, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil, fmt.Errorf("dom: empty selector")
	}

	selectorMu.RLock()
	group, ok := selectorCache[selector]
	selectorMu.RUnlock()
	if ok {
		return group, nil
	}

	group, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil, fmt.Errorf("dom: selector %q: %w", selector, err)
	}

	selectorMu.Lock()
	selectorCache[selector] = group
	selectorMu.Unlock()
	return group, nil
}

// walk visits n and its descendants depth first in document order until fn
// returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if !walk(child, fn) {
			return false
		}
	}
	return true
}
