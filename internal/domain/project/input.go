package project

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jsamuelsen11/project-board/internal/domain"
	"github.com/jsamuelsen11/project-board/internal/domain/validation"
)

// MsgInvalidInput is the single message shown to a user whose submission
// fails any input rule.
const MsgInvalidInput = "Invalid input, please try again!"

// Input rules for a new project. Description bounds are exclusive, the
// headcount bounds inclusive.
const (
	DescriptionMinLength = 20
	DescriptionMaxLength = 200
	MinPeople            = 1
	MaxPeople            = 100
)

// Input is a proposed project as entered by a user.
type Input struct {
	Title          string
	Description    string
	NumberOfPeople int
}

// ParseInput builds an Input from raw form values. A headcount that is not a
// whole number is reported as a validation failure on number_of_people.
func ParseInput(title, description, people string) (Input, error) {
	in := Input{Title: title, Description: description}
	n, err := strconv.Atoi(strings.TrimSpace(people))
	if err != nil {
		return in, &domain.ValidationError{
			Fields: map[string]string{"number_of_people": "must be a whole number"},
			Detail: MsgInvalidInput,
		}
	}
	in.NumberOfPeople = n
	return in, nil
}

// Validate applies the input rules. Failures come back as a
// *domain.ValidationError whose message is MsgInvalidInput.
func (in Input) Validate() error {
	fields := make(map[string]string)

	if !validation.Validate(validation.Validatable{Value: in.Title, Required: true}) {
		fields["title"] = domain.MsgRequired
	}
	if !validation.Validate(validation.Validatable{
		Value:     in.Description,
		Required:  true,
		MinLength: validation.Int(DescriptionMinLength),
		MaxLength: validation.Int(DescriptionMaxLength),
	}) {
		fields["description"] = fmt.Sprintf("must be longer than %d and shorter than %d characters",
			DescriptionMinLength, DescriptionMaxLength)
	}
	if !validation.Validate(validation.Validatable{
		Value:    in.NumberOfPeople,
		Required: true,
		Min:      validation.Float(MinPeople),
		Max:      validation.Float(MaxPeople),
	}) {
		fields["number_of_people"] = fmt.Sprintf("must be between %d and %d", MinPeople, MaxPeople)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields, Detail: MsgInvalidInput}
	}
	return nil
}
