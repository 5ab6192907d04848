package behavior

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-formframe/pkg/dom"
)

// AddressAttribute names the attribute holding the navigation address of el.
// The AddressAttr marker overrides the tag based default.
func AddressAttribute(el *dom.Element) string {
	if el == nil {
		return ""
	}
	if name, ok := el.Attr(AddressAttr); ok && strings.TrimSpace(name) != "" {
		return strings.TrimSpace(name)
	}
	switch el.Tag() {
	case "a", "area", "link":
		return "href"
	case "form":
		return "action"
	case "button", "input":
		return "formaction"
	default:
		return "src"
	}
}

// Address returns the navigation address stored on el.
func Address(el *dom.Element) string {
	value, _ := el.Attr(AddressAttribute(el))
	return value
}

// SetAddress stores addr on el.
func SetAddress(el *dom.Element, addr string) {
	if el == nil {
		return
	}
	el.SetAttr(AddressAttribute(el), addr)
}

// EncodeQuery serializes a single pair as application/x-www-form-urlencoded,
// byte for byte what a browser produces for a GET form with one field.
func EncodeQuery(name, value string) string {
	return url.Values{name: {value}}.Encode()
}

// ReplaceQuery returns address with its query replaced by the single pair
// name=value. The path and fragment are kept; the previous query is dropped.
func ReplaceQuery(address, name, value string) string {
	base, fragment := address, ""
	if i := strings.IndexByte(base, '#'); i >= 0 {
		base, fragment = base[:i], base[i:]
	}
	if i := strings.IndexByte(base, '?'); i >= 0 {
		base = base[:i]
	}
	return base + "?" + EncodeQuery(name, value) + fragment
}
