package behavior

import "github.com/goliatone/go-formframe/pkg/dom"

// Encoder rewrites the address of every target so that its query holds only
// the changed field.
type Encoder struct {
	cfg Config
}

// NewEncoder builds an encoder for one trigger group.
func NewEncoder(cfg Config) *Encoder {
	return &Encoder{cfg: cfg}
}

// Encode snapshots the targets and rewrites their addresses. It reports false
// when ev does not come from a source of the group or carries no field name;
// no address is touched in that case.
func (e *Encoder) Encode(ev ChangeEvent) bool {
	if e == nil || !e.cfg.accepts(ev) {
		return false
	}
	return e.encode(Targets(e.cfg), ev)
}

func (e *Encoder) encode(targets Collection, ev ChangeEvent) bool {
	if ev.Name == "" {
		return false
	}
	targets.Each(func(_ int, el *dom.Element) {
		SetAddress(el, ReplaceQuery(Address(el), ev.Name, ev.Value))
	})
	return true
}
