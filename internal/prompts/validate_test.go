package prompts

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		title string
		text  string
		want  error
	}{
		{"valid", "Greeting", "Say hello", nil},
		{"empty title", "", "Say hello", ErrInvalid},
		{"empty text", "Greeting", "", ErrInvalid},
		{"both empty", "", "", ErrInvalid},
		{"whitespace accepted", "   ", "\t", nil},
		{"title at limit", strings.Repeat("a", MaxTitleLength), "x", nil},
		{"title over limit", strings.Repeat("a", MaxTitleLength+1), "x", ErrTitleTooLong},
		{"multibyte at limit", strings.Repeat("é", MaxTitleLength), "x", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CreateCommand{Title: tt.title, Text: tt.text}.validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("validate: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("validate = %v, want %v", err, tt.want)
			}
		})
	}
}
