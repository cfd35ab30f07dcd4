package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidID(t *testing.T) {
	tests := []struct {
		token string
		valid bool
	}{
		{token: "1", valid: true},
		{token: "42", valid: true},
		{token: "007", valid: true},
		{token: "9223372036854775807", valid: true},
		{token: "9223372036854775808", valid: false},
		{token: "", valid: false},
		{token: "abc", valid: false},
		{token: "5a", valid: false},
		{token: "-1", valid: false},
		{token: "+1", valid: false},
		{token: "1.5", valid: false},
		{token: " 1", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidID(tt.token))
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("15")
	require.NoError(t, err)
	assert.Equal(t, int64(15), id)

	_, err = ParseID("x")
	assert.ErrorIs(t, err, ErrInvalidID)
}
