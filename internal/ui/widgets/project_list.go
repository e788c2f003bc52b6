package widgets

import (
	"fmt"
	"log/slog"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jsamuelsen11/project-board/internal/domain/project"
	"github.com/jsamuelsen11/project-board/internal/ports"
	"github.com/jsamuelsen11/project-board/internal/ui/component"
	"github.com/jsamuelsen11/project-board/internal/ui/dom"
)

var upper = cases.Upper(language.English)

// ProjectList shows the projects of one status and is the drop target for
// moving projects into that status.
type ProjectList struct {
	doc      *dom.Document
	el       *dom.Element
	list     *dom.Element
	heading  *dom.Element
	status   project.Status
	store    ports.ProjectStore
	logger   *slog.Logger
	assigned []project.Project
	remove   func()
}

// NewProjectList mounts the list for status at the end of the app host,
// subscribes it to the store and renders the store's current projects.
func NewProjectList(doc *dom.Document, store ports.ProjectStore, status project.Status, logger *slog.Logger) (*ProjectList, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("project list: invalid status %q", status)
	}
	logger = orDiscard(logger)
	spec := component.Spec{
		TemplateID: TemplateProjectList,
		HostID:     HostApp,
		Position:   dom.BeforeEnd,
		ElementID:  ListElementID(status),
	}
	pl, err := component.Attach(doc, spec, func(el *dom.Element) (*ProjectList, error) {
		pl := &ProjectList{doc: doc, el: el, status: status, store: store, logger: logger}
		var err error
		if pl.list, err = el.MustQuerySelector("ul"); err != nil {
			return nil, err
		}
		if pl.heading, err = el.MustQuerySelector("h2"); err != nil {
			return nil, err
		}
		return pl, nil
	})
	if err != nil {
		return nil, err
	}

	pl.remove = store.AddListener(pl.Render)
	pl.Render(store.Snapshot())
	return pl, nil
}

// ListElementID is the id of the list widget for status.
func ListElementID(status project.Status) string {
	return string(status) + "-projects"
}

// ItemsElementID is the id of the <ul> holding the items for status.
func ItemsElementID(status project.Status) string {
	return string(status) + "-project-list"
}

// Heading is the list title for status.
func Heading(status project.Status) string {
	return upper.String(string(status)) + " PROJECTS"
}

// WireEvents attaches the drop target handlers.
func (pl *ProjectList) WireEvents() {
	pl.el.AddEventListener(dom.EventDragOver, pl.onDragOver)
	pl.el.AddEventListener(dom.EventDrop, pl.onDrop)
	pl.el.AddEventListener(dom.EventDragLeave, pl.onDragLeave)
}

// PopulateContent sets the item container id and the heading.
func (pl *ProjectList) PopulateContent() {
	pl.list.SetID(ItemsElementID(pl.status))
	pl.heading.SetTextContent(Heading(pl.status))
}

// Status returns the status this list shows.
func (pl *ProjectList) Status() project.Status { return pl.status }

// Projects returns the projects currently rendered, in store order.
func (pl *ProjectList) Projects() []project.Project {
	out := make([]project.Project, len(pl.assigned))
	copy(out, pl.assigned)
	return out
}

// Render replaces the rendered items with the projects of snap that have
// this list's status. It is the list's store listener.
func (pl *ProjectList) Render(snap project.Snapshot) {
	pl.assigned = snap.WithStatus(pl.status)
	pl.list.ClearChildren()
	for _, p := range pl.assigned {
		if _, err := NewProjectItem(pl.doc, pl.list.ID(), p); err != nil {
			pl.logger.Error("rendering project item",
				slog.String("operation", "ProjectList.Render"),
				slog.String("project_id", p.ID),
				slog.String("status", string(pl.status)),
				slog.Any("error", err),
			)
			return
		}
	}
}

// Close detaches the list from the store.
func (pl *ProjectList) Close() {
	if pl.remove != nil {
		pl.remove()
	}
}

func (pl *ProjectList) onDragOver(ev *dom.Event) {
	types := ev.DataTransfer.Types()
	if len(types) > 0 && types[0] == DragFormat {
		ev.PreventDefault()
		pl.list.AddClass(ClassDroppable)
	}
}

func (pl *ProjectList) onDrop(ev *dom.Event) {
	pl.list.RemoveClass(ClassDroppable)
	if id := ev.DataTransfer.GetData(DragFormat); id != "" {
		pl.store.MoveProject(ev.Context(), id, pl.status)
	}
}

func (pl *ProjectList) onDragLeave(*dom.Event) {
	pl.list.RemoveClass(ClassDroppable)
}
