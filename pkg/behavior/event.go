package behavior

import "github.com/goliatone/go-formframe/pkg/dom"

// ChangeEvent is the "value changed" signal of a form control. Name and Value
// are captured when the event is created, so later edits to the control do not
// leak into an in-progress dispatch.
type ChangeEvent struct {
	Source *dom.Element
	Name   string
	Value  string
}

// ChangeFrom captures the current name and value of a control.
func ChangeFrom(source *dom.Element) ChangeEvent {
	if source == nil {
		return ChangeEvent{}
	}
	return ChangeEvent{
		Source: source,
		Name:   source.Name(),
		Value:  source.Value(),
	}
}
