package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "basic trim", input: "  Books  ", want: "Books"},
		{name: "multiple spaces", input: "Rua    das Flores", want: "Rua das Flores"},
		{name: "tabs and newlines", input: "Rua\t\ndas Flores", want: "Rua das Flores"},
		{name: "empty", input: "", want: ""},
		{name: "only whitespace", input: "   \t\n  ", want: ""},
		{name: "preserve accents", input: " São  Paulo ", want: "São Paulo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimAndNormalize(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, TrimAndNormalize(got), "must be idempotent")
		})
	}
}

func TestNormalizeInitials(t *testing.T) {
	assert.Equal(t, "SC", NormalizeInitials(" sc "))
	assert.Equal(t, "", NormalizeInitials("  "))
}

func TestNormalizeDescription(t *testing.T) {
	assert.Equal(t, "READ ONLY", NormalizeDescription("  read   only "))
}
