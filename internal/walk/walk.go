// Package walk fills the address form from a terminal. It drives a
// frames.Host, so changing the country refreshes the state region the same
// way a browser running the form runtime would.
package walk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/goliatone/go-formframe/internal/logging"
	"github.com/goliatone/go-formframe/pkg/dom"
	"github.com/goliatone/go-formframe/pkg/frames"
)

const controlSelector = "[data-fg-scope] input[name], [data-fg-scope] select[name]"

// ErrCancelled is returned when the user declines to submit.
var ErrCancelled = errors.New("walk: submission cancelled")

type Option func(*Walker)

func WithLogger(logger *slog.Logger) Option {
	return func(w *Walker) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// Walker prompts for every control of the loaded form.
type Walker struct {
	host     *frames.Host
	prompter Prompter
	logger   *slog.Logger
}

func New(host *frames.Host, prompter Prompter, opts ...Option) (*Walker, error) {
	if host == nil || prompter == nil {
		return nil, errors.New("walk: host and prompter are required")
	}
	w := &Walker{host: host, prompter: prompter, logger: logging.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w, nil
}

type control struct {
	name     string
	label    string
	value    string
	required bool
	choice   bool
	source   bool
	options  []dom.Option
}

// Run loads address, prompts for each control in document order and submits
// the form. It returns the location of the resulting page.
func (w *Walker) Run(ctx context.Context, address string) (*url.URL, error) {
	if err := w.host.Load(ctx, address); err != nil {
		return nil, fmt.Errorf("walk: load %s: %w", address, err)
	}

	done := map[string]bool{}
	for {
		c, ok := w.next(done)
		if !ok {
			break
		}
		done[c.name] = true
		if err := w.ask(ctx, c); err != nil {
			return nil, err
		}
	}

	submit, err := w.prompter.Confirm(ctx, ConfirmConfig{Message: "Save address?", Default: true})
	if err != nil {
		return nil, err
	}
	if !submit {
		return nil, ErrCancelled
	}

	button := w.submitter()
	if button == nil {
		return nil, errors.New("walk: form has no submit control")
	}
	err = w.host.Submit(ctx, button)
	var statusErr *frames.StatusError
	if errors.As(err, &statusErr) {
		for _, msg := range w.errorMessages() {
			if infoErr := w.prompter.Info(ctx, msg); infoErr != nil {
				return nil, infoErr
			}
		}
	}
	if err != nil {
		return nil, err
	}
	return w.host.Location(), nil
}

// next returns the first control not yet answered. The document is read
// again on every call because answers can replace regions.
func (w *Walker) next(done map[string]bool) (control, bool) {
	var out control
	found := false
	w.host.Inspect(func(doc *dom.Document) {
		if doc == nil {
			return
		}
		els, err := doc.Query(controlSelector)
		if err != nil {
			return
		}
		for _, el := range els {
			if done[el.Name()] || !prompted(el) {
				continue
			}
			out = control{
				name:     el.Name(),
				label:    labelFor(doc, el),
				value:    el.Value(),
				required: el.HasAttr("required"),
				source:   el.HasAttr("data-fg-source"),
			}
			if el.Tag() == "select" {
				out.choice = true
				out.options = el.Options()
			}
			found = true
			return
		}
	})
	return out, found
}

func prompted(el *dom.Element) bool {
	if el.HasAttr("disabled") || el.HasAttr("hidden") {
		return false
	}
	if el.Tag() != "input" {
		return true
	}
	typ, _ := el.Attr("type")
	switch strings.ToLower(strings.TrimSpace(typ)) {
	case "", "text", "email", "tel", "search":
		return true
	}
	return false
}

func labelFor(doc *dom.Document, el *dom.Element) string {
	if id := el.ID(); id != "" {
		if label, _ := doc.First(fmt.Sprintf("label[for=%q]", id)); label != nil {
			if text := strings.TrimSpace(label.Text()); text != "" {
				return text
			}
		}
	}
	return el.Name()
}

func (w *Walker) ask(ctx context.Context, c control) error {
	if c.choice {
		return w.choose(ctx, c)
	}
	in := InputConfig{Message: c.label, Default: c.value}
	if c.required {
		in.Validator = func(v string) error {
			if strings.TrimSpace(v) == "" {
				return fmt.Errorf("%s is required", c.label)
			}
			return nil
		}
	}
	value, err := w.prompter.Input(ctx, in)
	if err != nil {
		return err
	}
	_, err = w.host.Select(ctx, c.name, value)
	return err
}

func (w *Walker) choose(ctx context.Context, c control) error {
	labels := make([]string, len(c.options))
	def := 0
	for i, opt := range c.options {
		labels[i] = opt.Label
		if opt.Value == c.value {
			def = i
		}
	}
	idx, err := w.prompter.Select(ctx, SelectConfig{Message: c.label, Options: labels, DefaultIndex: def, PageSize: 12})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(c.options) {
		return fmt.Errorf("walk: no option selected for %s", c.name)
	}

	res, err := w.host.Select(ctx, c.name, c.options[idx].Value)
	if err != nil {
		return err
	}
	if res.Activated == 0 {
		if !c.source {
			return nil
		}
		return w.fallback(ctx)
	}
	if err := w.host.Wait(); err != nil {
		return fmt.Errorf("walk: refresh after %s: %w", c.name, err)
	}
	w.logger.Debug("walk: regions refreshed", "control", c.name, "targets", res.Activated)
	return w.reportRegions(ctx)
}

// fallback submits the visible fallback control, reloading the form with
// every answer so far. Unenhanced forms refresh their regions this way.
func (w *Walker) fallback(ctx context.Context) error {
	var button *dom.Element
	w.host.Inspect(func(doc *dom.Document) {
		els, _ := doc.Query("[data-fg-scope] [data-fg-fallback]")
		for _, el := range els {
			if !el.HasAttr("hidden") {
				button = el
				return
			}
		}
	})
	if button == nil {
		return nil
	}
	if err := w.host.Submit(ctx, button); err != nil {
		return fmt.Errorf("walk: fallback submit: %w", err)
	}
	return w.reportRegions(ctx)
}

// reportRegions shows the text of regions that hold no control, such as the
// hint shown for countries without states.
func (w *Walker) reportRegions(ctx context.Context) error {
	var hints []string
	w.host.Inspect(func(doc *dom.Document) {
		regions, _ := doc.Query("[data-fg-region]")
		for _, region := range regions {
			if el, _ := region.First("input[name], select[name]"); el != nil {
				continue
			}
			if text := strings.Join(strings.Fields(region.Text()), " "); text != "" {
				hints = append(hints, text)
			}
		}
	})
	for _, hint := range hints {
		if err := w.prompter.Info(ctx, hint); err != nil {
			return err
		}
	}
	return nil
}

func (w *Walker) submitter() *dom.Element {
	var button *dom.Element
	w.host.Inspect(func(doc *dom.Document) {
		button, _ = doc.First(`[data-fg-scope] button[type="submit"]:not([data-fg-fallback])`)
	})
	return button
}

func (w *Walker) errorMessages() []string {
	var out []string
	w.host.Inspect(func(doc *dom.Document) {
		els, _ := doc.Query(".form-errors li, .field-error")
		for _, el := range els {
			if text := strings.TrimSpace(el.Text()); text != "" {
				out = append(out, text)
			}
		}
	})
	return out
}
