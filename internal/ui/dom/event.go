package dom

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"golang.org/x/net/html"
)

// Event types forwarded from the browser.
const (
	EventSubmit    = "submit"
	EventDragStart = "dragstart"
	EventDragEnd   = "dragend"
	EventDragOver  = "dragover"
	EventDragLeave = "dragleave"
	EventDrop      = "drop"
)

// EventHandler reacts to a dispatched event.
type EventHandler func(*Event)

// Event is one user interaction delivered to the document.
type Event struct {
	Ctx  context.Context
	Type string
	// TargetID names the element the browser reported as the target.
	TargetID string
	// DataTransfer carries the drag payload for drag events.
	DataTransfer *DataTransfer
	// Form holds submitted control values keyed by control id.
	Form map[string]string

	target           *Element
	currentTarget    *Element
	defaultPrevented bool
	alerts           []string
	errs             []error
}

// Context returns the event context, falling back to context.Background.
func (e *Event) Context() context.Context {
	if e.Ctx == nil {
		return context.Background()
	}
	return e.Ctx
}

// Target is the element the event was dispatched to.
func (e *Event) Target() *Element { return e.target }

// CurrentTarget is the element whose handler is running.
func (e *Event) CurrentTarget() *Element { return e.currentTarget }

// PreventDefault cancels the browser default action.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether any handler called PreventDefault.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// Alert queues a blocking message for the user.
func (e *Event) Alert(msg string) { e.alerts = append(e.alerts, msg) }

// Alerts returns the queued user messages in order.
func (e *Event) Alerts() []string { return slices.Clone(e.alerts) }

// Fail records a handler error. Dispatch keeps bubbling and returns the
// recorded errors joined with errors.Join.
func (e *Event) Fail(err error) {
	if err != nil {
		e.errs = append(e.errs, err)
	}
}

// Dispatch delivers ev to the element named by ev.TargetID and then to each
// ancestor, running the handlers registered for ev.Type in registration
// order. The propagation path is fixed before the first handler runs, so a
// handler that detaches part of the tree does not cut bubbling short.
// Handlers registered while dispatching do not run for ev.
func (d *Document) Dispatch(ev *Event) error {
	target, err := d.ElementByID(ev.TargetID)
	if err != nil {
		return fmt.Errorf("dispatching %s: %w", ev.Type, err)
	}
	ev.target = target
	if ev.DataTransfer == nil {
		ev.DataTransfer = NewDataTransfer()
	}
	var path []*html.Node
	for n := target.node; n != nil; n = n.Parent {
		path = append(path, n)
	}
	for _, n := range path {
		handlers := slices.Clone(d.listeners[n][ev.Type])
		if len(handlers) == 0 {
			continue
		}
		ev.currentTarget = d.wrap(n)
		for _, h := range handlers {
			h(ev)
		}
	}
	ev.currentTarget = nil
	return errors.Join(ev.errs...)
}

// DataTransfer is the drag payload shared by the events of one drag
// gesture.
type DataTransfer struct {
	EffectAllowed string

	types []string
	data  map[string]string
}

// NewDataTransfer returns an empty payload.
func NewDataTransfer() *DataTransfer {
	return &DataTransfer{data: make(map[string]string)}
}

// RestoreDataTransfer rebuilds a payload from formats in order and their
// values.
func RestoreDataTransfer(types []string, data map[string]string) *DataTransfer {
	dt := NewDataTransfer()
	for _, t := range types {
		dt.SetData(t, data[t])
	}
	return dt
}

// SetData stores data under format, keeping the first-set order of formats.
func (dt *DataTransfer) SetData(format, data string) {
	if _, ok := dt.data[format]; !ok {
		dt.types = append(dt.types, format)
	}
	dt.data[format] = data
}

// GetData returns the data stored under format, or "".
func (dt *DataTransfer) GetData(format string) string {
	return dt.data[format]
}

// Types lists the stored formats in the order they were first set.
func (dt *DataTransfer) Types() []string {
	return slices.Clone(dt.types)
}

// Data returns a copy of every stored format and value.
func (dt *DataTransfer) Data() map[string]string {
	out := make(map[string]string, len(dt.data))
	for k, v := range dt.data {
		out[k] = v
	}
	return out
}
