package behavior

import "github.com/goliatone/go-formframe/pkg/dom"

// Activator performs the activation of a target, typically a region scoped
// navigation to the target's address.
type Activator interface {
	Activate(target *dom.Element)
}

// ActivatorFunc adapts a function to Activator.
type ActivatorFunc func(target *dom.Element)

// Activate calls f(target).
func (f ActivatorFunc) Activate(target *dom.Element) {
	if f != nil {
		f(target)
	}
}

// Relay activates the targets of a trigger group when a source changes.
type Relay struct {
	cfg       Config
	activator Activator
}

// NewRelay builds a relay. A nil activator makes every relay a no-op.
func NewRelay(cfg Config, activator Activator) *Relay {
	return &Relay{cfg: cfg, activator: activator}
}

// Relay activates every target once, in document order, and returns how many
// were activated. Events from outside the group are ignored.
func (r *Relay) Relay(ev ChangeEvent) int {
	if r == nil || !r.cfg.accepts(ev) {
		return 0
	}
	return r.activate(Targets(r.cfg))
}

func (r *Relay) activate(targets Collection) int {
	if r.activator == nil {
		return 0
	}
	count := 0
	targets.Each(func(_ int, el *dom.Element) {
		r.activator.Activate(el)
		count++
	})
	return count
}
