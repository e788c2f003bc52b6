package dto

import (
	"encoding/json"
	"fmt"

	"github.com/jsamuelsen11/project-board/internal/domain"
	"github.com/jsamuelsen11/project-board/internal/domain/project"
)

// CreateProjectRequest represents the JSON body for creating a project.
// NumberOfPeople keeps the literal the client sent so that fractional or
// out-of-range numbers fail validation instead of JSON decoding.
type CreateProjectRequest struct {
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	NumberOfPeople json.Number `json:"number_of_people"`
}

// Validate applies the same rules as the project form.
// Returns a *domain.ValidationError if any checks fail.
func (r *CreateProjectRequest) Validate() error {
	_, err := r.ToInput()
	return err
}

// ToInput converts the request into validated form input.
func (r *CreateProjectRequest) ToInput() (project.Input, error) {
	in, err := project.ParseInput(r.Title, r.Description, r.NumberOfPeople.String())
	if err != nil {
		return project.Input{}, err
	}
	if err := in.Validate(); err != nil {
		return project.Input{}, err
	}
	return in, nil
}

// MoveProjectRequest represents the JSON body for changing a project's status.
type MoveProjectRequest struct {
	Status string `json:"status"`
}

// Validate checks that the target status is known.
// Returns a *domain.ValidationError if it is not.
func (r *MoveProjectRequest) Validate() error {
	switch {
	case r.Status == "":
		return &domain.ValidationError{Fields: map[string]string{"status": domain.MsgRequired}}
	case !project.Status(r.Status).IsValid():
		return &domain.ValidationError{Fields: map[string]string{"status": fmt.Sprintf("invalid: %q", r.Status)}}
	}
	return nil
}
