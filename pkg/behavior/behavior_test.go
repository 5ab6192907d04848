package behavior

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formframe/pkg/dom"
)

const groupMarkup = `<!doctype html>
<html><body>
<form id="address" data-fg-scope>
  <input name="name" value="Ada">
  <select name="country" data-fg-source>
    <option value="">Select a country</option>
    <option value="CA">Canada</option>
    <option value="US">United States</option>
  </select>
  <a id="t1" href="/addresses/new?stale=1#state" data-fg-target data-fg-frame="address-state" hidden></a>
  <div id="address-state" data-fg-region></div>
  <a id="t2" href="/preview" data-fg-target class="extra" hidden></a>
  <button id="t3" formaction="/addresses/new" data-fg-target data-fg-address="data-url" data-url="/other?x=1" hidden></button>
  <button id="fallback" data-fg-fallback formmethod="get" formaction="/addresses/new">Update</button>
</form>
<form id="billing" data-fg-scope>
  <select name="country" data-fg-source>
    <option value="GB">United Kingdom</option>
  </select>
  <a id="b1" href="/billing/new" data-fg-target hidden></a>
</form>
<select name="loose"><option value="x">X</option></select>
</body></html>`

type recorder struct {
	ids       []string
	addresses []string
}

func (r *recorder) Activate(el *dom.Element) {
	r.ids = append(r.ids, el.ID())
	r.addresses = append(r.addresses, Address(el))
}

func parseGroup(t *testing.T) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(groupMarkup)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func addressConfig(t *testing.T, doc *dom.Document) Config {
	t.Helper()
	container, ok := doc.ByID("address")
	if !ok {
		t.Fatalf("container missing")
	}
	cfg, err := NewConfig(container, "[data-fg-source]", "[data-fg-target]")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	return cfg
}

func sourceIn(t *testing.T, doc *dom.Document, formID string) *dom.Element {
	t.Helper()
	el, err := doc.First("#" + formID + " [data-fg-source]")
	if err != nil || el == nil {
		t.Fatalf("source in %s missing: %v", formID, err)
	}
	return el
}

func TestNewConfigRejectsMissingContainer(t *testing.T) {
	_, err := NewConfig(nil, "[data-fg-source]")
	if !errors.Is(err, ErrMissingContainer) {
		t.Fatalf("expected ErrMissingContainer, got %v", err)
	}
}

func TestNewConfigRejectsBadSelector(t *testing.T) {
	doc := parseGroup(t)
	container, _ := doc.ByID("address")
	if _, err := NewConfig(container, "select[[", "a"); err == nil {
		t.Fatalf("expected source selector error")
	}
	if _, err := NewConfig(container, "select", "a[["); err == nil {
		t.Fatalf("expected target selector error")
	}
}

func TestConfigTargetsReturnsCopy(t *testing.T) {
	doc := parseGroup(t)
	cfg := addressConfig(t, doc)
	targets := cfg.Targets()
	targets[0] = "mutated"
	if cfg.Targets()[0] != "[data-fg-target]" {
		t.Fatalf("config must not share its selector slice")
	}
}

func TestTargetsSnapshotDocumentOrderWithoutDuplicates(t *testing.T) {
	doc := parseGroup(t)
	container, _ := doc.ByID("address")
	cfg, err := NewConfig(container, "[data-fg-source]", ".extra", "[data-fg-target]", "#t1")
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	var ids []string
	Targets(cfg).Each(func(_ int, el *dom.Element) { ids = append(ids, el.ID()) })
	if diff := cmp.Diff([]string{"t1", "t2", "t3"}, ids); diff != "" {
		t.Fatalf("unexpected targets (-want +got):\n%s", diff)
	}
}

func TestRelayActivatesEachTargetOnceInOrder(t *testing.T) {
	doc := parseGroup(t)
	cfg := addressConfig(t, doc)
	rec := &recorder{}
	relay := NewRelay(cfg, rec)

	source := sourceIn(t, doc, "address")
	if got := relay.Relay(ChangeFrom(source)); got != 3 {
		t.Fatalf("expected 3 activations, got %d", got)
	}
	if diff := cmp.Diff([]string{"t1", "t2", "t3"}, rec.ids); diff != "" {
		t.Fatalf("unexpected activation order (-want +got):\n%s", diff)
	}

	relay.Relay(ChangeFrom(source))
	if len(rec.ids) != 6 {
		t.Fatalf("expected exactly three more activations, got %d total", len(rec.ids))
	}
}

func TestRelayIgnoresForeignEvents(t *testing.T) {
	doc := parseGroup(t)
	cfg := addressConfig(t, doc)
	rec := &recorder{}
	relay := NewRelay(cfg, rec)

	name, _ := doc.First(`input[name="name"]`)
	loose, _ := doc.First(`select[name="loose"]`)
	billing := sourceIn(t, doc, "billing")

	for _, el := range []*dom.Element{name, loose, billing, nil} {
		if got := relay.Relay(ChangeFrom(el)); got != 0 {
			t.Fatalf("expected no activation, got %d", got)
		}
	}
	if len(rec.ids) != 0 {
		t.Fatalf("unexpected activations: %v", rec.ids)
	}
}

func TestRelayWithoutTargetsIsNoop(t *testing.T) {
	doc := parseGroup(t)
	container, _ := doc.ByID("address")
	cfg, err := NewConfig(container, "[data-fg-source]")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	rec := &recorder{}
	if got := NewPipeline(cfg, rec).Dispatch(ChangeFrom(sourceIn(t, doc, "address"))); got.Activated != 0 {
		t.Fatalf("expected no activation, got %+v", got)
	}
}

func TestEncodeReplacesWholeQuery(t *testing.T) {
	doc := parseGroup(t)
	cfg := addressConfig(t, doc)
	enc := NewEncoder(cfg)

	source := sourceIn(t, doc, "address")
	source.SetValue("CA")
	if !enc.Encode(ChangeFrom(source)) {
		t.Fatalf("expected encoding to run")
	}

	got := map[string]string{}
	Targets(cfg).Each(func(_ int, el *dom.Element) { got[el.ID()] = Address(el) })
	want := map[string]string{
		"t1": "/addresses/new?country=CA#state",
		"t2": "/preview?country=CA",
		"t3": "/other?country=CA",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected addresses (-want +got):\n%s", diff)
	}

	t3, _ := doc.ByID("t3")
	if action, _ := t3.Attr("formaction"); action != "/addresses/new" {
		t.Fatalf("address override must leave formaction alone, got %q", action)
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	doc := parseGroup(t)
	cfg := addressConfig(t, doc)
	enc := NewEncoder(cfg)
	ev := ChangeEvent{Source: sourceIn(t, doc, "address"), Name: "country", Value: "US"}

	enc.Encode(ev)
	first := Address(Targets(cfg).At(0))
	enc.Encode(ChangeEvent{Source: ev.Source, Name: "country", Value: "CA"})
	enc.Encode(ev)
	if second := Address(Targets(cfg).At(0)); first != second {
		t.Fatalf("expected identical addresses, got %q and %q", first, second)
	}
}

func TestEncodeEmptyValueKeepsName(t *testing.T) {
	doc := parseGroup(t)
	cfg := addressConfig(t, doc)

	source := sourceIn(t, doc, "address")
	source.SetValue("")
	res := NewPipeline(cfg, &recorder{}).Dispatch(ChangeFrom(source))
	if !res.Encoded {
		t.Fatalf("expected encoding for an empty value")
	}
	if got := Address(Targets(cfg).At(0)); got != "/addresses/new?country=#state" {
		t.Fatalf("unexpected address %q", got)
	}
}

func TestEmptyNameSkipsEncodingAndRelay(t *testing.T) {
	doc := parseGroup(t)
	cfg := addressConfig(t, doc)
	rec := &recorder{}

	source := sourceIn(t, doc, "address")
	res := NewPipeline(cfg, rec).Dispatch(ChangeEvent{Source: source, Value: "CA"})
	if res.Encoded || res.Activated != 0 {
		t.Fatalf("expected nothing to happen, got %+v", res)
	}
	if got := Address(Targets(cfg).At(0)); got != "/addresses/new?stale=1#state" {
		t.Fatalf("address must be untouched, got %q", got)
	}
	if len(rec.ids) != 0 {
		t.Fatalf("unexpected activations: %v", rec.ids)
	}
}

func TestPipelineActivationObservesEncodedAddress(t *testing.T) {
	doc := parseGroup(t)
	cfg := addressConfig(t, doc)
	rec := &recorder{}

	source := sourceIn(t, doc, "address")
	source.SetValue("US")
	res := NewPipeline(cfg, rec).Dispatch(ChangeFrom(source))

	want := Result{Targets: 3, Encoded: true, Activated: 3}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Fatalf("unexpected result (-want +got):\n%s", diff)
	}
	for i, addr := range rec.addresses {
		if !strings.Contains(addr, "?country=US") {
			t.Fatalf("activation %d saw pre-encode address %q", i, addr)
		}
	}
}

func TestReservedCharactersRoundTrip(t *testing.T) {
	values := []string{"a b", "x&y=z", "100%", "é/ü?#", "+plus", ""}
	for _, value := range values {
		encoded := ReplaceQuery("/addresses/new", "state name", value)
		u, err := url.Parse(encoded)
		if err != nil {
			t.Fatalf("parse %q: %v", encoded, err)
		}
		parsed, err := url.ParseQuery(u.RawQuery)
		if err != nil {
			t.Fatalf("parse query %q: %v", u.RawQuery, err)
		}
		want := url.Values{"state name": {value}}
		if diff := cmp.Diff(want, parsed); diff != "" {
			t.Fatalf("round trip of %q failed (-want +got):\n%s", value, diff)
		}
	}
}

func TestEncodeQueryMatchesFormEncoding(t *testing.T) {
	if got := EncodeQuery("city", "New York"); got != "city=New+York" {
		t.Fatalf("unexpected encoding %q", got)
	}
	if got := EncodeQuery("q", "a&b"); got != "q=a%26b" {
		t.Fatalf("unexpected encoding %q", got)
	}
}

func TestAddressAttributeDefaults(t *testing.T) {
	doc, err := dom.ParseString(`<a id="a"></a><form id="f"></form><button id="b"></button><input id="i"><iframe id="r"></iframe><div id="d" data-fg-address="data-href"></div>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := map[string]string{"a": "href", "f": "action", "b": "formaction", "i": "formaction", "r": "src", "d": "data-href"}
	for id, attr := range want {
		el, _ := doc.ByID(id)
		if got := AddressAttribute(el); got != attr {
			t.Fatalf("%s: expected %q, got %q", id, attr, got)
		}
	}
}

func TestAttachBuildsIndependentPipelines(t *testing.T) {
	doc := parseGroup(t)
	rec := &recorder{}

	page, err := Attach(doc, rec)
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if got := len(page.Pipelines()); got != 2 {
		t.Fatalf("expected 2 pipelines, got %d", got)
	}

	fallback, _ := doc.ByID("fallback")
	if !fallback.HasAttr("hidden") {
		t.Fatalf("expected fallback to be hidden")
	}

	res, ok := page.Change(sourceIn(t, doc, "billing"))
	if !ok || res.Activated != 1 {
		t.Fatalf("expected billing pipeline to handle the event, got %+v ok=%v", res, ok)
	}
	if diff := cmp.Diff([]string{"b1"}, rec.ids); diff != "" {
		t.Fatalf("unexpected activations (-want +got):\n%s", diff)
	}
	t1, _ := doc.ByID("t1")
	if got := Address(t1); got != "/addresses/new?stale=1#state" {
		t.Fatalf("other container must be untouched, got %q", got)
	}

	loose, _ := doc.First(`select[name="loose"]`)
	if _, ok := page.Change(loose); ok {
		t.Fatalf("expected unscoped control to be ignored")
	}
}
