package widgets

import (
	"github.com/jsamuelsen11/project-board/internal/domain/project"
	"github.com/jsamuelsen11/project-board/internal/ui/component"
	"github.com/jsamuelsen11/project-board/internal/ui/dom"
)

// ProjectItem renders one project and is the drag source for moving it.
type ProjectItem struct {
	el          *dom.Element
	title       *dom.Element
	people      *dom.Element
	description *dom.Element
	project     project.Project
}

// NewProjectItem mounts p at the end of the host list.
func NewProjectItem(doc *dom.Document, hostID string, p project.Project) (*ProjectItem, error) {
	spec := component.Spec{
		TemplateID: TemplateProjectItem,
		HostID:     hostID,
		Position:   dom.BeforeEnd,
		ElementID:  p.ID,
	}
	return component.Attach(doc, spec, func(el *dom.Element) (*ProjectItem, error) {
		item := &ProjectItem{el: el, project: p}
		var err error
		if item.title, err = el.MustQuerySelector("h2"); err != nil {
			return nil, err
		}
		if item.people, err = el.MustQuerySelector("h3"); err != nil {
			return nil, err
		}
		if item.description, err = el.MustQuerySelector("p"); err != nil {
			return nil, err
		}
		return item, nil
	})
}

// WireEvents attaches the drag handlers.
func (it *ProjectItem) WireEvents() {
	it.el.AddEventListener(dom.EventDragStart, it.onDragStart)
	it.el.AddEventListener(dom.EventDragEnd, func(*dom.Event) {})
}

// PopulateContent writes title, headcount phrase and description.
func (it *ProjectItem) PopulateContent() {
	it.title.SetTextContent(it.project.Title)
	it.people.SetTextContent(it.project.PeopleAssigned())
	it.description.SetTextContent(it.project.Description)
}

// Project returns the rendered project.
func (it *ProjectItem) Project() project.Project { return it.project }

func (it *ProjectItem) onDragStart(ev *dom.Event) {
	ev.DataTransfer.SetData(DragFormat, it.project.ID)
	ev.DataTransfer.EffectAllowed = EffectMove
}
