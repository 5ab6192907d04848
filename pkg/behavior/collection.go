package behavior

import (
	"strings"

	"github.com/goliatone/go-formframe/pkg/dom"
)

// Collection is an ordered snapshot of target elements. It is taken once per
// dispatch and is not affected by later document changes.
type Collection struct {
	elements []*dom.Element
}

// Targets snapshots the targets of cfg in document order. An element matched
// by several selectors appears once.
func Targets(cfg Config) Collection {
	if cfg.container == nil || len(cfg.targets) == 0 {
		return Collection{}
	}
	// A selector group yields the union in document order without duplicates.
	els, err := cfg.container.Query(strings.Join(cfg.targets, ", "))
	if err != nil {
		return Collection{}
	}
	return Collection{elements: els}
}

// Len returns the number of targets.
func (c Collection) Len() int { return len(c.elements) }

// At returns the i-th target or nil when out of range.
func (c Collection) At(i int) *dom.Element {
	if i < 0 || i >= len(c.elements) {
		return nil
	}
	return c.elements[i]
}

// Each calls fn for every target in order.
func (c Collection) Each(fn func(int, *dom.Element)) {
	if fn == nil {
		return
	}
	for i, el := range c.elements {
		fn(i, el)
	}
}

// Elements returns a copy of the snapshot.
func (c Collection) Elements() []*dom.Element {
	if len(c.elements) == 0 {
		return nil
	}
	return append([]*dom.Element{}, c.elements...)
}
