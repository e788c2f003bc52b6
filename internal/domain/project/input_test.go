package project_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/jsamuelsen11/project-board/internal/domain"
	"github.com/jsamuelsen11/project-board/internal/domain/project"
)

func TestInput_Validate(t *testing.T) {
	t.Parallel()

	valid := project.Input{
		Title:          "Build a deck",
		Description:    "Wooden deck in the backyard, 20m2",
		NumberOfPeople: 3,
	}

	tests := []struct {
		name      string
		modify    func(*project.Input)
		wantField string
	}{
		{name: "valid input passes", modify: func(*project.Input) {}},
		{name: "blank title fails", modify: func(in *project.Input) { in.Title = "   " }, wantField: "title"},
		{name: "empty description fails", modify: func(in *project.Input) { in.Description = "" }, wantField: "description"},
		{name: "description of 20 fails", modify: func(in *project.Input) { in.Description = strings.Repeat("a", 20) }, wantField: "description"},
		{name: "description of 21 passes", modify: func(in *project.Input) { in.Description = strings.Repeat("a", 21) }},
		{name: "description of 199 passes", modify: func(in *project.Input) { in.Description = strings.Repeat("a", 199) }},
		{name: "description of 200 fails", modify: func(in *project.Input) { in.Description = strings.Repeat("a", 200) }, wantField: "description"},
		{name: "padded short description fails", modify: func(in *project.Input) { in.Description = "  " + strings.Repeat("a", 20) + "  " }, wantField: "description"},
		{name: "zero people fails", modify: func(in *project.Input) { in.NumberOfPeople = 0 }, wantField: "number_of_people"},
		{name: "one person passes", modify: func(in *project.Input) { in.NumberOfPeople = 1 }},
		{name: "hundred people passes", modify: func(in *project.Input) { in.NumberOfPeople = 100 }},
		{name: "hundred and one fails", modify: func(in *project.Input) { in.NumberOfPeople = 101 }, wantField: "number_of_people"},
		{name: "negative people fails", modify: func(in *project.Input) { in.NumberOfPeople = -4 }, wantField: "number_of_people"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := valid
			tt.modify(&in)
			err := in.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}

			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want *domain.ValidationError", err)
			}
			if _, ok := verr.Fields[tt.wantField]; !ok {
				t.Errorf("Fields = %v, want key %q", verr.Fields, tt.wantField)
			}
			if err.Error() != project.MsgInvalidInput {
				t.Errorf("Error() = %q, want %q", err.Error(), project.MsgInvalidInput)
			}
		})
	}
}

func TestParseInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		people  string
		want    int
		wantErr bool
	}{
		{people: "3", want: 3},
		{people: " 42 ", want: 42},
		{people: "", wantErr: true},
		{people: "2.5", wantErr: true},
		{people: "three", wantErr: true},
	}

	for _, tt := range tests {
		in, err := project.ParseInput("t", "d", tt.people)
		if tt.wantErr {
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("ParseInput(people=%q) error = %v, want ErrValidation", tt.people, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseInput(people=%q) error = %v", tt.people, err)
			continue
		}
		if in.NumberOfPeople != tt.want || in.Title != "t" || in.Description != "d" {
			t.Errorf("ParseInput(people=%q) = %+v, want people %d", tt.people, in, tt.want)
		}
	}
}
