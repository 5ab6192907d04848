package dom

import (
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const formMarkup = `<!doctype html>
<html><body>
<form id="address" action="/addresses" method="post">
  <input name="name" value="Ada">
  <input name="line1" value="1 Main St" disabled>
  <input type="checkbox" name="default" value="yes" checked>
  <input type="checkbox" name="billing" value="yes">
  <select name="country">
    <option value="">Select a country</option>
    <option value="CA" selected>Canada</option>
    <option value="US">United States</option>
  </select>
  <div id="address-state" data-fg-region>
    <select name="state"><option>AB</option><option value="BC">British Columbia</option></select>
  </div>
  <textarea name="notes">ring twice</textarea>
  <button type="submit" name="commit" value="save">Save</button>
  <button type="submit" name="refresh" value="1" formmethod="get">Refresh</button>
</form>
<input name="outside" form="address" value="linked">
</body></html>`

func mustParse(t *testing.T, markup string) *Document {
	t.Helper()
	doc, err := ParseString(markup)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestQueryReturnsDocumentOrder(t *testing.T) {
	doc := mustParse(t, formMarkup)

	els, err := doc.Query("select")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	var names []string
	for _, el := range els {
		names = append(names, el.Name())
	}
	if diff := cmp.Diff([]string{"country", "state"}, names); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestQueryRejectsInvalidSelector(t *testing.T) {
	doc := mustParse(t, formMarkup)
	if _, err := doc.Query("select[["); err == nil {
		t.Fatalf("expected selector error")
	}
	if _, err := doc.Query("  "); err == nil {
		t.Fatalf("expected empty selector error")
	}
}

func TestRegionRequiresMarker(t *testing.T) {
	doc := mustParse(t, formMarkup)

	if _, ok := doc.Region("address-state"); !ok {
		t.Fatalf("expected region to be found")
	}
	if _, ok := doc.Region("address"); ok {
		t.Fatalf("form without region marker must not resolve as a region")
	}
	if _, ok := doc.Region(""); ok {
		t.Fatalf("empty id must not resolve")
	}
}

func TestSelectValue(t *testing.T) {
	doc := mustParse(t, formMarkup)

	country, _ := doc.First(`select[name="country"]`)
	if got := country.Value(); got != "CA" {
		t.Fatalf("expected selected option value CA, got %q", got)
	}

	state, _ := doc.First(`select[name="state"]`)
	if got := state.Value(); got != "AB" {
		t.Fatalf("expected first option text as value, got %q", got)
	}

	if !country.SetValue("US") {
		t.Fatalf("expected US to be selectable")
	}
	if got := country.Value(); got != "US" {
		t.Fatalf("expected US after SetValue, got %q", got)
	}
	if country.SetValue("ZZ") {
		t.Fatalf("unknown value must not be selectable")
	}
	if got := country.Value(); got != "" {
		t.Fatalf("expected first option value after clearing, got %q", got)
	}
}

func TestOptions(t *testing.T) {
	doc := mustParse(t, formMarkup)
	country, _ := doc.First(`select[name="country"]`)

	want := []Option{
		{Value: "", Label: "Select a country"},
		{Value: "CA", Label: "Canada", Selected: true},
		{Value: "US", Label: "United States"},
	}
	if diff := cmp.Diff(want, country.Options()); diff != "" {
		t.Fatalf("unexpected options (-want +got):\n%s", diff)
	}
}

func TestFormValues(t *testing.T) {
	doc := mustParse(t, formMarkup)
	form, ok := doc.ByID("address")
	if !ok {
		t.Fatalf("form not found")
	}
	refresh, _ := doc.First(`button[name="refresh"]`)

	got := form.FormValues(refresh)
	want := url.Values{
		"name":    {"Ada"},
		"default": {"yes"},
		"country": {"CA"},
		"state":   {"AB"},
		"notes":   {"ring twice"},
		"refresh": {"1"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected values (-want +got):\n%s", diff)
	}
}

func TestFormValuesRepeatedNamesKeepOrder(t *testing.T) {
	doc := mustParse(t, `<form id="f"><input name="tag" value="b"><input name="alpha" value="x"><input name="tag" value="a"></form>`)
	form, _ := doc.ByID("f")

	got := form.FormValues(nil)
	if diff := cmp.Diff([]string{"b", "a"}, got["tag"]); diff != "" {
		t.Fatalf("repeated values (-want +got):\n%s", diff)
	}
	if enc := got.Encode(); enc != "alpha=x&tag=b&tag=a" {
		t.Fatalf("unexpected encoding %q", enc)
	}
}

func TestFormOwner(t *testing.T) {
	doc := mustParse(t, formMarkup)
	outside, _ := doc.First(`input[name="outside"]`)
	form := outside.Form(doc)
	if form == nil || form.ID() != "address" {
		t.Fatalf("expected form attribute to resolve the owner, got %#v", form)
	}

	name, _ := doc.First(`input[name="name"]`)
	if owner := name.Form(doc); owner == nil || !owner.Same(form) {
		t.Fatalf("expected ancestor form")
	}
}

func TestReplaceChildrenMovesNodes(t *testing.T) {
	doc := mustParse(t, formMarkup)
	region, _ := doc.Region("address-state")

	fragment := mustParse(t, `<div id="address-state" data-fg-region><select name="state"><option value="NSW">New South Wales</option></select></div>`)
	incoming, ok := fragment.Region("address-state")
	if !ok {
		t.Fatalf("fragment region missing")
	}
	region.ReplaceChildren(incoming)

	state, _ := doc.First(`select[name="state"]`)
	if got := state.Value(); got != "NSW" {
		t.Fatalf("expected swapped state options, got %q", got)
	}
	if strings.TrimSpace(incoming.InnerHTML()) != "" {
		t.Fatalf("expected source region to be emptied")
	}
	country, _ := doc.First(`select[name="country"]`)
	if got := country.Value(); got != "CA" {
		t.Fatalf("country must be untouched, got %q", got)
	}
}

func TestClosestAndContains(t *testing.T) {
	doc := mustParse(t, formMarkup)
	state, _ := doc.First(`select[name="state"]`)

	region, err := state.Closest("[data-fg-region]")
	if err != nil || region == nil || region.ID() != "address-state" {
		t.Fatalf("expected closest region, got %#v (%v)", region, err)
	}
	form, _ := doc.ByID("address")
	if !form.Contains(state) {
		t.Fatalf("expected form to contain state")
	}
	if state.Contains(form) {
		t.Fatalf("state must not contain form")
	}
}
