package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSearchTerms(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "fold accents and case",
			input: []string{"São Paulo", "RIO"},
			want:  []string{"sao paulo", "rio"},
		},
		{
			name:  "remove duplicates after folding",
			input: []string{"São Paulo", "sao paulo", "SAO  PAULO"},
			want:  []string{"sao paulo"},
		},
		{
			name:  "filter empty strings",
			input: []string{"Paraná", "", "  ", "Bahia"},
			want:  []string{"parana", "bahia"},
		},
		{
			name:  "empty input",
			input: []string{},
			want:  []string{},
		},
		{
			name:  "nil input",
			input: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSearchTerms(tt.input))
		})
	}
}

func TestNormalizeStringSlice_CustomNormalizer(t *testing.T) {
	got := NormalizeStringSlice([]string{"sc", " SC", "pr"}, NormalizeInitials)
	assert.Equal(t, []string{"SC", "PR"}, got)
}
