package address

import (
	"net/url"
	"strings"
)

// Field names shared by the form, the query string and validation errors.
const (
	FieldName       = "name"
	FieldLine1      = "line1"
	FieldLine2      = "line2"
	FieldCity       = "city"
	FieldCountry    = "country"
	FieldState      = "state"
	FieldPostalCode = "postal_code"
)

// Fields lists the editable fields in form order.
func Fields() []string {
	return []string{FieldName, FieldLine1, FieldLine2, FieldCity, FieldCountry, FieldState, FieldPostalCode}
}

// Address is a postal address record.
type Address struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	Country    string `json:"country"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code"`
}

// FromValues builds an address from submitted form or query values. Unknown
// keys are ignored; absent keys leave the field empty.
func FromValues(values url.Values) Address {
	var a Address
	for _, field := range Fields() {
		a.Set(field, values.Get(field))
	}
	return a
}

// Values returns the editable fields as url.Values, including empty ones.
func (a Address) Values() url.Values {
	out := url.Values{}
	for _, field := range Fields() {
		out.Set(field, a.Value(field))
	}
	return out
}

// Value returns the value of a field by name.
func (a Address) Value(field string) string {
	switch field {
	case FieldName:
		return a.Name
	case FieldLine1:
		return a.Line1
	case FieldLine2:
		return a.Line2
	case FieldCity:
		return a.City
	case FieldCountry:
		return a.Country
	case FieldState:
		return a.State
	case FieldPostalCode:
		return a.PostalCode
	case "id":
		return a.ID
	default:
		return ""
	}
}

// Set assigns a field by name and reports whether the field exists.
func (a *Address) Set(field, value string) bool {
	switch field {
	case FieldName:
		a.Name = value
	case FieldLine1:
		a.Line1 = value
	case FieldLine2:
		a.Line2 = value
	case FieldCity:
		a.City = value
	case FieldCountry:
		a.Country = value
	case FieldState:
		a.State = value
	case FieldPostalCode:
		a.PostalCode = value
	default:
		return false
	}
	return true
}

// Map returns the editable fields keyed by name, for templates.
func (a Address) Map() map[string]string {
	out := make(map[string]string, len(Fields()))
	for _, field := range Fields() {
		out[field] = a.Value(field)
	}
	return out
}

// Normalize trims every field, strips markup from free text and upper-cases
// the country and state codes.
func (a Address) Normalize() Address {
	out := a
	for _, field := range Fields() {
		out.Set(field, sanitizeText(a.Value(field)))
	}
	out.Country = strings.ToUpper(out.Country)
	out.State = strings.ToUpper(out.State)
	return out
}
