// Package component mounts widgets into a document. A widget is a copy of a
// <template> inserted into a host element, optionally given an id, and then
// brought to life by two hooks: WireEvents attaches handlers and
// PopulateContent fills in text.
package component

import (
	"fmt"

	"github.com/jsamuelsen11/project-board/internal/ui/dom"
)

// Spec describes where a widget comes from and where it goes.
type Spec struct {
	TemplateID string
	HostID     string
	Position   dom.InsertPosition
	// ElementID, when set, becomes the id of the mounted element.
	ElementID string
}

// Widget is a mounted piece of UI.
type Widget interface {
	WireEvents()
	PopulateContent()
}

// Mount clones the template, applies the element id and inserts the clone
// into the host. A missing template or host wraps dom.ErrElementNotFound.
func Mount(doc *dom.Document, spec Spec) (*dom.Element, error) {
	host, err := doc.ElementByID(spec.HostID)
	if err != nil {
		return nil, fmt.Errorf("mounting %s: host: %w", spec.TemplateID, err)
	}
	el, err := doc.ImportTemplate(spec.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("mounting %s: %w", spec.TemplateID, err)
	}
	if spec.ElementID != "" {
		el.SetID(spec.ElementID)
	}
	pos := spec.Position
	if pos == "" {
		pos = dom.BeforeEnd
	}
	if err := host.InsertAdjacent(pos, el); err != nil {
		return nil, fmt.Errorf("mounting %s into #%s: %w", spec.TemplateID, spec.HostID, err)
	}
	return el, nil
}

// Attach mounts spec, hands the element to build, then runs WireEvents and
// PopulateContent on the result in that order.
func Attach[W Widget](doc *dom.Document, spec Spec, build func(el *dom.Element) (W, error)) (W, error) {
	var zero W
	el, err := Mount(doc, spec)
	if err != nil {
		return zero, err
	}
	w, err := build(el)
	if err != nil {
		return zero, fmt.Errorf("building %s: %w", spec.TemplateID, err)
	}
	w.WireEvents()
	w.PopulateContent()
	return w, nil
}
