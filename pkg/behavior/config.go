package behavior

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formframe/pkg/dom"
)

// Markup attributes recognised by Attach and the address helpers.
const (
	ScopeAttr    = "data-fg-scope"
	SourceAttr   = "data-fg-source"
	TargetAttr   = "data-fg-target"
	FrameAttr    = "data-fg-frame"
	FallbackAttr = "data-fg-fallback"
	AddressAttr  = "data-fg-address"
)

// ErrMissingContainer is returned by NewConfig when no container is given.
var ErrMissingContainer = errors.New("behavior: missing container")

// Config is the immutable description of one trigger group: the container
// that bounds it, the selector identifying source controls, and the selectors
// identifying relay targets. Both selectors are evaluated inside the container.
type Config struct {
	container *dom.Element
	source    string
	targets   []string
}

// NewConfig validates and freezes a trigger group description. An empty source
// selector or an empty target list is allowed and turns the group into a
// no-op; malformed selectors are rejected.
func NewConfig(container *dom.Element, source string, targets ...string) (Config, error) {
	if container == nil || container.Node() == nil {
		return Config{}, ErrMissingContainer
	}

	source = strings.TrimSpace(source)
	if source != "" {
		if _, err := container.Matches(source); err != nil {
			return Config{}, fmt.Errorf("behavior: source selector: %w", err)
		}
	}

	cleaned := make([]string, 0, len(targets))
	for _, sel := range targets {
		sel = strings.TrimSpace(sel)
		if sel == "" {
			continue
		}
		if _, err := container.Matches(sel); err != nil {
			return Config{}, fmt.Errorf("behavior: target selector: %w", err)
		}
		cleaned = append(cleaned, sel)
	}

	return Config{container: container, source: source, targets: cleaned}, nil
}

// Container returns the element bounding the trigger group.
func (c Config) Container() *dom.Element { return c.container }

// Source returns the source selector.
func (c Config) Source() string { return c.source }

// Targets returns a copy of the target selectors.
func (c Config) Targets() []string {
	if len(c.targets) == 0 {
		return nil
	}
	return append([]string{}, c.targets...)
}

// accepts reports whether ev originates from a source control of this group.
func (c Config) accepts(ev ChangeEvent) bool {
	if c.container == nil || c.source == "" || ev.Source == nil {
		return false
	}
	if !c.container.Contains(ev.Source) {
		return false
	}
	ok, err := ev.Source.Matches(c.source)
	return err == nil && ok
}
