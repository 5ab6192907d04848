package dom

import (
	"bytes"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Element wraps an element node. Two Element values wrapping the same node are
// interchangeable; compare them with Same.
type Element struct {
	node *html.Node
}

func wrap(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	return &Element{node: n}
}

// Node exposes the underlying html node.
func (e *Element) Node() *html.Node {
	if e == nil {
		return nil
	}
	return e.node
}

// Tag returns the lower-case tag name.
func (e *Element) Tag() string {
	if e == nil || e.node.Type != html.ElementNode {
		return ""
	}
	return e.node.Data
}

// ID returns the id attribute.
func (e *Element) ID() string {
	value, _ := e.Attr("id")
	return value
}

// Name returns the name attribute of a form control.
func (e *Element) Name() string {
	value, _ := e.Attr("name")
	return value
}

// Attr returns the named attribute and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttr reports whether the attribute is present, regardless of its value.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.Attr(name)
	return ok
}

// SetAttr sets or adds an attribute.
func (e *Element) SetAttr(name, value string) {
	if e == nil {
		return
	}
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr deletes an attribute when present.
func (e *Element) RemoveAttr(name string) {
	if e == nil {
		return
	}
	kept := e.node.Attr[:0]
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			continue
		}
		kept = append(kept, a)
	}
	e.node.Attr = kept
}

// Same reports whether both values wrap the same node.
func (e *Element) Same(other *Element) bool {
	if e == nil || other == nil {
		return e == nil && other == nil
	}
	return e.node == other.node
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	if e == nil || other == nil {
		return false
	}
	for n := other.node; n != nil; n = n.Parent {
		if n == e.node {
			return true
		}
	}
	return false
}

// Closest returns the nearest ancestor (or e itself) matching selector.
func (e *Element) Closest(selector string) (*Element, error) {
	if e == nil {
		return nil, nil
	}
	group, err := compile(selector)
	if err != nil {
		return nil, err
	}
	for n := e.node; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && group.Match(n) {
			return wrap(n), nil
		}
	}
	return nil, nil
}

// Matches reports whether e matches selector.
func (e *Element) Matches(selector string) (bool, error) {
	if e == nil {
		return false, nil
	}
	group, err := compile(selector)
	if err != nil {
		return false, err
	}
	return group.Match(e.node), nil
}

// Query returns descendants of e matching selector in document order.
func (e *Element) Query(selector string) ([]*Element, error) {
	if e == nil {
		return nil, nil
	}
	group, err := compile(selector)
	if err != nil {
		return nil, err
	}
	nodes := cascadia.QueryAll(e.node, group)
	out := make([]*Element, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, wrap(n))
	}
	return out, nil
}

// First returns the first descendant matching selector, or nil.
func (e *Element) First(selector string) (*Element, error) {
	if e == nil {
		return nil, nil
	}
	group, err := compile(selector)
	if err != nil {
		return nil, err
	}
	return wrap(cascadia.Query(e.node, group)), nil
}

// Text returns the concatenated text content.
func (e *Element) Text() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	walk(e.node, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		return true
	})
	return b.String()
}

// InnerHTML renders the children of e.
func (e *Element) InnerHTML() string {
	if e == nil {
		return ""
	}
	var buf bytes.Buffer
	for child := e.node.FirstChild; child != nil; child = child.NextSibling {
		if err := html.Render(&buf, child); err != nil {
			return ""
		}
	}
	return buf.String()
}

// ReplaceChildren moves the children of src into e, discarding the current
// children of e. src is left empty. Attributes of e are untouched.
func (e *Element) ReplaceChildren(src *Element) {
	if e == nil {
		return
	}
	for child := e.node.FirstChild; child != nil; {
		next := child.NextSibling
		e.node.RemoveChild(child)
		child = next
	}
	if src == nil {
		return
	}
	for child := src.node.FirstChild; child != nil; {
		next := child.NextSibling
		src.node.RemoveChild(child)
		e.node.AppendChild(child)
		child = next
	}
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val
		}
	}
	return ""
}
