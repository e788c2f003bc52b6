// Package widgets implements the board's three widgets on top of the
// component lifecycle: the project input form, one project list per status,
// and the draggable project item. Board ties them to a single document.
package widgets

// Page structure the widgets rely on.
const (
	TemplateProjectInput = "project-input"
	TemplateProjectList  = "project-list"
	TemplateProjectItem  = "single-project"

	HostApp        = "app"
	InputElementID = "user-input"

	FieldTitle       = "title"
	FieldDescription = "description"
	FieldPeople      = "people"

	// DragFormat is the drag payload type carrying a project id.
	DragFormat = "text/plain"
	// ClassDroppable marks a list while a project hovers over it.
	ClassDroppable = "droppable"
	// EffectMove is the only drag effect items allow.
	EffectMove = "move"
)

// Templates lists every template id a board needs.
var Templates = []string{TemplateProjectInput, TemplateProjectList, TemplateProjectItem}
