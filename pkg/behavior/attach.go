package behavior

import (
	"fmt"

	"github.com/goliatone/go-formframe/pkg/dom"
)

// Page holds the pipelines attached to one document, one per container.
type Page struct {
	doc       *dom.Document
	pipelines []*Pipeline
}

// Attach discovers every trigger group declared in doc, builds one independent
// pipeline per container and hides the no-script fallback controls.
func Attach(doc *dom.Document, activator Activator) (*Page, error) {
	if doc == nil {
		return nil, fmt.Errorf("behavior: missing document")
	}
	containers, err := doc.Query("[" + ScopeAttr + "]")
	if err != nil {
		return nil, fmt.Errorf("behavior: find containers: %w", err)
	}

	page := &Page{doc: doc}
	for _, container := range containers {
		cfg, err := NewConfig(container, "["+SourceAttr+"]", "["+TargetAttr+"]")
		if err != nil {
			return nil, err
		}
		page.pipelines = append(page.pipelines, NewPipeline(cfg, activator))

		fallbacks, err := container.Query("[" + FallbackAttr + "]")
		if err != nil {
			return nil, fmt.Errorf("behavior: find fallbacks: %w", err)
		}
		for _, el := range fallbacks {
			el.SetAttr("hidden", "")
		}
	}
	return page, nil
}

// Document returns the attached document.
func (p *Page) Document() *dom.Document {
	if p == nil {
		return nil
	}
	return p.doc
}

// Pipelines returns the attached pipelines in document order of their
// containers.
func (p *Page) Pipelines() []*Pipeline {
	if p == nil || len(p.pipelines) == 0 {
		return nil
	}
	return append([]*Pipeline{}, p.pipelines...)
}

// Change captures the value of source and dispatches it to the pipeline whose
// container holds it. It reports false when no pipeline accepts the control.
func (p *Page) Change(source *dom.Element) (Result, bool) {
	return p.Dispatch(ChangeFrom(source))
}

// Dispatch routes ev to the accepting pipeline.
func (p *Page) Dispatch(ev ChangeEvent) (Result, bool) {
	if p == nil {
		return Result{}, false
	}
	for _, pipeline := range p.pipelines {
		if !pipeline.cfg.accepts(ev) {
			continue
		}
		return pipeline.Dispatch(ev), true
	}
	return Result{}, false
}
