package widgets

import (
	"fmt"
	"log/slog"

	"github.com/jsamuelsen11/project-board/internal/domain/project"
	"github.com/jsamuelsen11/project-board/internal/ports"
	"github.com/jsamuelsen11/project-board/internal/ui/dom"
)

// Board is one rendering of the page: a document with the input form and
// one list per status mounted into it.
type Board struct {
	doc   *dom.Document
	input *ProjectInput
	lists []*ProjectList
}

// NewBoard mounts the input form, then the active list, then the finished
// list into doc. Every template is checked up front so a broken page fails
// here rather than on the first render.
func NewBoard(doc *dom.Document, store ports.ProjectStore, logger *slog.Logger) (*Board, error) {
	logger = orDiscard(logger)
	for _, id := range Templates {
		if _, err := doc.ImportTemplate(id); err != nil {
			return nil, fmt.Errorf("building board: %w", err)
		}
	}

	b := &Board{doc: doc}
	input, err := NewProjectInput(doc, store, logger)
	if err != nil {
		return nil, fmt.Errorf("building board: %w", err)
	}
	b.input = input

	for _, status := range project.Statuses {
		list, err := NewProjectList(doc, store, status, logger)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("building board: %w", err)
		}
		b.lists = append(b.lists, list)
	}
	return b, nil
}

// Document returns the board's document.
func (b *Board) Document() *dom.Document { return b.doc }

// Input returns the project input form.
func (b *Board) Input() *ProjectInput { return b.input }

// List returns the list for status, or nil.
func (b *Board) List(status project.Status) *ProjectList {
	for _, l := range b.lists {
		if l.Status() == status {
			return l
		}
	}
	return nil
}

// Dispatch delivers a browser event to the board.
func (b *Board) Dispatch(ev *dom.Event) error {
	return b.doc.Dispatch(ev)
}

// AppHTML renders the contents of the app host.
func (b *Board) AppHTML() (string, error) {
	return b.doc.InnerHTML(HostApp)
}

// OuterHTML renders the app host including its own tag.
func (b *Board) OuterHTML() (string, error) {
	return b.doc.OuterHTML(HostApp)
}

// Close detaches every list from the store.
func (b *Board) Close() {
	for _, l := range b.lists {
		l.Close()
	}
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
