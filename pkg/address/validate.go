package address

import (
	"sort"
	"strings"

	"github.com/goliatone/go-formframe/components/subdivisions"
)

// Errors maps field names to validation messages. The empty key holds
// form-level messages.
type Errors map[string][]string

// Add appends a message for field.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Has reports whether field has messages.
func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

// Fields returns the names of fields with errors, sorted.
func (e Errors) Fields() []string {
	out := make([]string, 0, len(e))
	for field, messages := range e {
		if len(messages) > 0 {
			out = append(out, field)
		}
	}
	sort.Strings(out)
	return out
}

// Validate checks a normalized address against the reference data. A nil
// result means the address is valid.
func (a Address) Validate(provider subdivisions.Provider) Errors {
	errs := Errors{}

	required := []struct {
		field string
		label string
	}{
		{FieldName, "Name"},
		{FieldLine1, "Address line 1"},
		{FieldCity, "City"},
		{FieldCountry, "Country"},
		{FieldPostalCode, "Postal code"},
	}
	for _, r := range required {
		if strings.TrimSpace(a.Value(r.field)) == "" {
			errs.Add(r.field, r.label+" is required")
		}
	}

	if a.Country != "" && provider != nil {
		a.validateRegion(provider, errs)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (a Address) validateRegion(provider subdivisions.Provider, errs Errors) {
	subs, ok := provider.Subdivisions(a.Country)
	if !ok {
		errs.Add(FieldCountry, "Country is not supported")
		return
	}

	if len(subs) == 0 {
		if a.State != "" {
			errs.Add(FieldState, "State must be empty for the selected country")
		}
		return
	}

	if a.State == "" {
		errs.Add(FieldState, "State is required for the selected country")
		return
	}
	for _, sub := range subs {
		if sub.Value == a.State {
			return
		}
	}
	errs.Add(FieldState, "State does not belong to the selected country")
}
