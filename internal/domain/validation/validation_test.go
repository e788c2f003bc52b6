package validation_test

import (
	"testing"

	"github.com/jsamuelsen11/project-board/internal/domain/validation"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   validation.Validatable
		want bool
	}{
		{
			name: "no constraints passes",
			in:   validation.Validatable{Value: ""},
			want: true,
		},
		{
			name: "required empty string fails",
			in:   validation.Validatable{Value: "", Required: true},
			want: false,
		},
		{
			name: "required whitespace string fails",
			in:   validation.Validatable{Value: "  \t", Required: true},
			want: false,
		},
		{
			name: "required zero fails",
			in:   validation.Validatable{Value: 0, Required: true},
			want: false,
		},
		{
			name: "required non-empty string passes",
			in:   validation.Validatable{Value: "Build a deck", Required: true},
			want: true,
		},
		{
			name: "required nil fails",
			in:   validation.Validatable{Value: nil, Required: true},
			want: false,
		},
		{
			name: "length exactly min fails",
			in:   validation.Validatable{Value: "12345", MinLength: validation.Int(5)},
			want: false,
		},
		{
			name: "length above min passes",
			in:   validation.Validatable{Value: "123456", MinLength: validation.Int(5)},
			want: true,
		},
		{
			name: "length exactly max fails",
			in:   validation.Validatable{Value: "12345", MaxLength: validation.Int(5)},
			want: false,
		},
		{
			name: "length below max passes",
			in:   validation.Validatable{Value: "1234", MaxLength: validation.Int(5)},
			want: true,
		},
		{
			name: "length counts trimmed runes",
			in:   validation.Validatable{Value: "  héllo  ", MinLength: validation.Int(4), MaxLength: validation.Int(6)},
			want: true,
		},
		{
			name: "min inclusive",
			in:   validation.Validatable{Value: 1, Min: validation.Float(1)},
			want: true,
		},
		{
			name: "below min fails",
			in:   validation.Validatable{Value: 0, Min: validation.Float(1)},
			want: false,
		},
		{
			name: "max inclusive",
			in:   validation.Validatable{Value: 100, Max: validation.Float(100)},
			want: true,
		},
		{
			name: "above max fails",
			in:   validation.Validatable{Value: 101, Max: validation.Float(100)},
			want: false,
		},
		{
			name: "float value uses range",
			in:   validation.Validatable{Value: 2.5, Min: validation.Float(1), Max: validation.Float(3)},
			want: true,
		},
		{
			name: "range constraint on string is ignored",
			in:   validation.Validatable{Value: "abc", Min: validation.Float(10)},
			want: true,
		},
		{
			name: "length constraint on number is ignored",
			in:   validation.Validatable{Value: 3, MinLength: validation.Int(20)},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := validation.Validate(tt.in); got != tt.want {
				t.Errorf("Validate(%+v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
