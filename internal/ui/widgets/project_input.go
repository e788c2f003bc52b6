package widgets

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jsamuelsen11/project-board/internal/domain/project"
	"github.com/jsamuelsen11/project-board/internal/ports"
	"github.com/jsamuelsen11/project-board/internal/ui/component"
	"github.com/jsamuelsen11/project-board/internal/ui/dom"
)

// ProjectInput is the new-project form.
type ProjectInput struct {
	el          *dom.Element
	title       *dom.Element
	description *dom.Element
	people      *dom.Element
	store       ports.ProjectStore
	logger      *slog.Logger
}

// NewProjectInput mounts the form at the top of the app host.
func NewProjectInput(doc *dom.Document, store ports.ProjectStore, logger *slog.Logger) (*ProjectInput, error) {
	logger = orDiscard(logger)
	spec := component.Spec{
		TemplateID: TemplateProjectInput,
		HostID:     HostApp,
		Position:   dom.AfterBegin,
		ElementID:  InputElementID,
	}
	return component.Attach(doc, spec, func(el *dom.Element) (*ProjectInput, error) {
		pi := &ProjectInput{el: el, store: store, logger: logger}
		var err error
		if pi.title, err = el.MustQuerySelector("#" + FieldTitle); err != nil {
			return nil, err
		}
		if pi.description, err = el.MustQuerySelector("#" + FieldDescription); err != nil {
			return nil, err
		}
		if pi.people, err = el.MustQuerySelector("#" + FieldPeople); err != nil {
			return nil, err
		}
		return pi, nil
	})
}

// WireEvents attaches the submit handler.
func (pi *ProjectInput) WireEvents() {
	pi.el.AddEventListener(dom.EventSubmit, pi.onSubmit)
}

// PopulateContent does nothing; the form is static.
func (pi *ProjectInput) PopulateContent() {}

// Element returns the mounted form.
func (pi *ProjectInput) Element() *dom.Element { return pi.el }

// Values returns the current field values keyed by field id.
func (pi *ProjectInput) Values() map[string]string {
	return map[string]string{
		FieldTitle:       pi.title.Value(),
		FieldDescription: pi.description.Value(),
		FieldPeople:      pi.people.Value(),
	}
}

// Submit copies values into the form fields and submits the form. A valid
// submission adds an active project and clears the fields. An invalid one
// leaves the store and the fields untouched and returns an *AlertError.
func (pi *ProjectInput) Submit(ctx context.Context, values map[string]string) error {
	pi.fill(values)

	in, err := project.ParseInput(pi.title.Value(), pi.description.Value(), pi.people.Value())
	if err == nil {
		err = in.Validate()
	}
	if err != nil {
		pi.logger.DebugContext(ctx, "project input rejected",
			slog.String("operation", "ProjectInput.Submit"),
			slog.Any("error", err),
		)
		return &AlertError{Message: project.MsgInvalidInput, Cause: err}
	}

	pi.store.AddProject(ctx, in.Title, in.Description, in.NumberOfPeople)
	pi.clear()
	return nil
}

func (pi *ProjectInput) onSubmit(ev *dom.Event) {
	ev.PreventDefault()
	err := pi.Submit(ev.Context(), ev.Form)
	if err == nil {
		return
	}
	var alert *AlertError
	if errors.As(err, &alert) {
		ev.Alert(alert.Message)
		return
	}
	ev.Fail(err)
}

func (pi *ProjectInput) fill(values map[string]string) {
	if v, ok := values[FieldTitle]; ok {
		pi.title.SetValue(v)
	}
	if v, ok := values[FieldDescription]; ok {
		pi.description.SetValue(v)
	}
	if v, ok := values[FieldPeople]; ok {
		pi.people.SetValue(v)
	}
}

func (pi *ProjectInput) clear() {
	pi.title.SetValue("")
	pi.description.SetValue("")
	pi.people.SetValue("")
}
