package dom

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Option describes one option of a select control.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Value returns the current value of a form control following browser rules:
// inputs report their value attribute, textareas their text, and selects the
// selected option (or the first option when none is marked).
func (e *Element) Value() string {
	switch e.Tag() {
	case "select":
		options := e.Options()
		for _, opt := range options {
			if opt.Selected {
				return opt.Value
			}
		}
		if len(options) > 0 && !e.HasAttr("multiple") {
			return options[0].Value
		}
		return ""
	case "textarea":
		return e.Text()
	default:
		value, _ := e.Attr("value")
		return value
	}
}

// SetValue updates the control value. For selects it reports false when no
// option carries the value; the selection is cleared in that case.
func (e *Element) SetValue(value string) bool {
	switch e.Tag() {
	case "select":
		matched := false
		for _, opt := range e.optionNodes() {
			el := wrap(opt)
			if !matched && optionValue(opt) == value {
				el.SetAttr("selected", "")
				matched = true
				continue
			}
			el.RemoveAttr("selected")
		}
		return matched
	case "textarea":
		for child := e.node.FirstChild; child != nil; {
			next := child.NextSibling
			e.node.RemoveChild(child)
			child = next
		}
		e.node.AppendChild(&html.Node{Type: html.TextNode, Data: value})
		return true
	default:
		e.SetAttr("value", value)
		return true
	}
}

// Options lists the options of a select in document order.
func (e *Element) Options() []Option {
	nodes := e.optionNodes()
	if len(nodes) == 0 {
		return nil
	}
	out := make([]Option, 0, len(nodes))
	for _, n := range nodes {
		el := wrap(n)
		out = append(out, Option{
			Value:    optionValue(n),
			Label:    strings.TrimSpace(el.Text()),
			Selected: el.HasAttr("selected"),
		})
	}
	return out
}

func (e *Element) optionNodes() []*html.Node {
	if e.Tag() != "select" {
		return nil
	}
	var out []*html.Node
	walk(e.node, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "option" {
			out = append(out, n)
		}
		return true
	})
	return out
}

func optionValue(n *html.Node) string {
	if value, ok := wrap(n).Attr("value"); ok {
		return value
	}
	return strings.TrimSpace(wrap(n).Text())
}

// Form returns the form owning a control: the element referenced by the form
// attribute, or the closest form ancestor.
func (e *Element) Form(doc *Document) *Element {
	if e == nil {
		return nil
	}
	if id, ok := e.Attr("form"); ok && doc != nil {
		if form, found := doc.ByID(id); found && form.Tag() == "form" {
			return form
		}
	}
	for n := e.node.Parent; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && n.Data == "form" {
			return wrap(n)
		}
	}
	return nil
}

// FormValues collects the successful controls of a form the way a browser
// builds a submission. Values of a repeated name keep document order; the
// names themselves are unordered, and Encode sorts them. submitter, when not
// nil, contributes its own name/value pair; other submit buttons are skipped.
func (e *Element) FormValues(submitter *Element) url.Values {
	values := url.Values{}
	if e == nil {
		return values
	}
	walk(e.node, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		el := wrap(n)
		name := el.Name()
		if name == "" || el.HasAttr("disabled") {
			return true
		}
		switch n.Data {
		case "input":
			typ := strings.ToLower(attr(n, "type"))
			switch typ {
			case "checkbox", "radio":
				if !el.HasAttr("checked") {
					return true
				}
				value, ok := el.Attr("value")
				if !ok {
					value = "on"
				}
				values.Add(name, value)
			case "submit", "image":
				if submitter != nil && submitter.Same(el) {
					values.Add(name, el.Value())
				}
			case "button", "reset", "file":
			default:
				values.Add(name, el.Value())
			}
		case "button":
			typ := strings.ToLower(attr(n, "type"))
			if (typ == "" || typ == "submit") && submitter != nil && submitter.Same(el) {
				values.Add(name, el.Value())
			}
		case "select":
			if el.HasAttr("multiple") {
				for _, opt := range el.Options() {
					if opt.Selected {
						values.Add(name, opt.Value)
					}
				}
				return true
			}
			if len(el.optionNodes()) == 0 {
				return true
			}
			values.Add(name, el.Value())
		case "textarea":
			values.Add(name, el.Value())
		}
		return true
	})
	return values
}
