package frame

import (
	"github.com/goliatone/go-formframe/components/subdivisions"
	"github.com/goliatone/go-formframe/pkg/address"
	"github.com/goliatone/go-formframe/pkg/render"
)

// Field kinds understood by the form template.
const (
	KindText   = "text"
	KindSelect = "select"
	KindState  = "state"
)

// SelectOption is a select option as rendered.
type SelectOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// Field is one rendered form control.
type Field struct {
	Name     string         `json:"name"`
	Label    string         `json:"label"`
	Kind     string         `json:"kind"`
	Value    string         `json:"value"`
	Required bool           `json:"required"`
	Source   bool           `json:"source"`
	Hint     string         `json:"hint,omitempty"`
	Errors   []string       `json:"errors,omitempty"`
	Options  []SelectOption `json:"options,omitempty"`
}

// Paths are the links the templates emit.
type Paths struct {
	Index  string `json:"index"`
	New    string `json:"new"`
	Create string `json:"create"`
}

// Theme carries the resolved theme into the page shell.
type Theme struct {
	Name        string   `json:"name"`
	Variant     string   `json:"variant"`
	CSS         string   `json:"css"`
	Stylesheets []string `json:"stylesheets"`
}

// Link is an entry of the address index.
type Link struct {
	Href  string `json:"href"`
	Label string `json:"label"`
}

// View is the data every page template receives. Renderer fills Region,
// Paths, Theme, Hidden and RuntimeSrc from its options when they are left
// empty.
type View struct {
	Title      string               `json:"title"`
	AddressID  string               `json:"address_id,omitempty"`
	Address    map[string]string    `json:"address,omitempty"`
	Fields     []Field              `json:"fields,omitempty"`
	State      Field                `json:"state"`
	FormErrors []string             `json:"form_errors,omitempty"`
	Hidden     []render.HiddenField `json:"hidden,omitempty"`
	Addresses  []Link               `json:"addresses,omitempty"`
	Region     string               `json:"region"`
	Paths      Paths                `json:"paths"`
	Theme      Theme                `json:"theme"`
	RuntimeSrc string               `json:"runtime_src,omitempty"`
}

// FormInput collects what the address form needs to render.
type FormInput struct {
	Address   address.Address
	Errors    map[string][]string
	Countries []subdivisions.Option
	// Subdivisions of the selected country; Known is false when no country
	// is selected or the country is unknown.
	Subdivisions []subdivisions.Option
	Known        bool
	// Notices are form-level messages shown before the mapped errors.
	Notices []string
}

var fieldLabels = map[string]string{
	address.FieldName:       "Full name",
	address.FieldLine1:      "Address line 1",
	address.FieldLine2:      "Address line 2",
	address.FieldCity:       "City",
	address.FieldCountry:    "Country",
	address.FieldState:      "State / Province",
	address.FieldPostalCode: "Postal code",
}

// FormView builds the view of the address form. Every field is populated
// from in.Address; errors keyed by unknown fields become form-level errors.
func FormView(title string, in FormInput) View {
	mapping := render.MapErrorPayload(address.Fields(), in.Errors)
	values := in.Address.Map()

	view := View{
		Title:      title,
		Address:    values,
		FormErrors: render.MergeFormErrors(in.Notices, mapping.Form...),
		State:      StateField(in.Address.State, in.Subdivisions, in.Known, mapping.Fields[address.FieldState]),
	}

	for _, name := range address.Fields() {
		field := Field{
			Name:     name,
			Label:    fieldLabels[name],
			Kind:     KindText,
			Value:    values[name],
			Required: name != address.FieldLine2,
			Errors:   mapping.Fields[name],
		}
		switch name {
		case address.FieldCountry:
			field.Kind = KindSelect
			field.Source = true
			field.Options = countryOptions(in.Countries, values[name])
		case address.FieldState:
			field = view.State
		}
		view.Fields = append(view.Fields, field)
	}
	return view
}

// StateField builds the state control rendered inside the region. Known
// countries without subdivisions render a hint instead of a select.
func StateField(selected string, subs []subdivisions.Option, known bool, errs []string) Field {
	field := Field{
		Name:   address.FieldState,
		Label:  fieldLabels[address.FieldState],
		Kind:   KindState,
		Value:  selected,
		Errors: errs,
	}
	switch {
	case !known:
		field.Hint = "Select a country first."
	case len(subs) == 0:
		field.Hint = "No state or province is needed for this country."
	default:
		field.Required = true
		field.Options = make([]SelectOption, 0, len(subs))
		for _, sub := range subs {
			field.Options = append(field.Options, SelectOption{Value: sub.Value, Label: sub.Label, Selected: sub.Value == selected})
		}
	}
	return field
}

func countryOptions(countries []subdivisions.Option, selected string) []SelectOption {
	out := make([]SelectOption, 0, len(countries)+1)
	out = append(out, SelectOption{Value: "", Label: "Select a country", Selected: selected == ""})
	for _, c := range countries {
		out = append(out, SelectOption{Value: c.Value, Label: c.Label, Selected: c.Value == selected})
	}
	return out
}

// DetailView builds the read-only view of a stored address.
func DetailView(title string, a address.Address, countries []subdivisions.Option) View {
	values := a.Map()
	for _, c := range countries {
		if c.Value == a.Country {
			values[address.FieldCountry] = c.Label
			break
		}
	}
	view := View{Title: title, AddressID: a.ID, Address: values}
	for _, name := range address.Fields() {
		view.Fields = append(view.Fields, Field{Name: name, Label: fieldLabels[name], Kind: KindText, Value: values[name]})
	}
	return view
}
