// Package project holds the Project entity and the read-only Snapshot view
// that listeners receive whenever the project collection changes.
package project

import (
	"fmt"
	"strings"
	"time"

	"github.com/jsamuelsen11/project-board/internal/domain"
)

// Project is a single tracked piece of work. Projects are plain values: the
// store owns the canonical copy and everything else works on copies.
type Project struct {
	ID             string
	Title          string
	Description    string
	NumberOfPeople int
	Status         Status
	CreatedAt      time.Time
}

// PeopleAssigned returns the headcount phrase shown under the project title.
func (p Project) PeopleAssigned() string {
	switch p.NumberOfPeople {
	case 0:
		return "No people assigned."
	case 1:
		return "One person assigned."
	default:
		return fmt.Sprintf("%d persons assigned", p.NumberOfPeople)
	}
}

// Validate checks the structural rules that always hold for a stored project.
// Description length is an input rule and is not checked here.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) with per-field details,
// or nil if all rules pass.
func (p *Project) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(p.ID) == "" {
		fields["id"] = domain.MsgRequired
	}
	if strings.TrimSpace(p.Title) == "" {
		fields["title"] = domain.MsgRequired
	}
	if p.NumberOfPeople < 0 {
		fields["number_of_people"] = fmt.Sprintf("must not be negative, got %d", p.NumberOfPeople)
	}
	if !p.Status.IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", p.Status)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
