package validator

import (
	"encoding/json"
	"testing"

	"marketplace/pkg/logger"
	"marketplace/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator() *AddressValidator {
	return NewAddressValidator(logger.NewNop())
}

func TestParseCreate(t *testing.T) {
	tests := []struct {
		name    string
		in      model.AddressInput
		wantMsg string
	}{
		{
			name:    "missing cep",
			in:      model.AddressInput{Street: "Rua A", Number: json.Number("10")},
			wantMsg: MsgRequiredFields,
		},
		{
			name:    "street not a string",
			in:      model.AddressInput{Street: json.Number("1"), Number: json.Number("10"), Cep: "89229780"},
			wantMsg: MsgStreetNotString,
		},
		{
			name:    "blank street",
			in:      model.AddressInput{Street: "   ", Number: json.Number("10"), Cep: "89229780"},
			wantMsg: MsgStreetEmpty,
		},
		{
			name:    "number not numeric",
			in:      model.AddressInput{Street: "Rua A", Number: "ten", Cep: "89229780"},
			wantMsg: MsgNumberNotNumeric,
		},
		{
			name:    "fractional number",
			in:      model.AddressInput{Street: "Rua A", Number: json.Number("10.5"), Cep: "89229780"},
			wantMsg: MsgNumberNotNumeric,
		},
		{
			name:    "cep not a string",
			in:      model.AddressInput{Street: "Rua A", Number: json.Number("10"), Cep: json.Number("89229780")},
			wantMsg: MsgCepNotString,
		},
		{
			name:    "cep wrong length",
			in:      model.AddressInput{Street: "Rua A", Number: json.Number("10"), Cep: "8922978"},
			wantMsg: MsgCepInvalid,
		},
		{
			name:    "cep bad format",
			in:      model.AddressInput{Street: "Rua A", Number: json.Number("10"), Cep: "8922-9780"},
			wantMsg: MsgCepFormatInvalid,
		},
		{
			name:    "complement not a string",
			in:      model.AddressInput{Street: "Rua A", Number: json.Number("10"), Cep: "89229780", Complement: true},
			wantMsg: MsgComplementInvalid,
		},
	}

	v := newValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.ParseCreate(&tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, Message(err))
		})
	}
}

func TestParseCreate_Normalizes(t *testing.T) {
	address, err := newValidator().ParseCreate(&model.AddressInput{
		Street: "  Rua   das Flores ",
		Number: json.Number("120"),
		Cep:    "89229-780",
	})
	require.NoError(t, err)
	assert.Equal(t, "Rua das Flores", address.Street)
	assert.Equal(t, 120, address.Number)
	assert.Equal(t, "89229780", address.Cep)
	assert.Equal(t, "", address.Complement)
}

func TestParseCreate_AcceptsNumericString(t *testing.T) {
	address, err := newValidator().ParseCreate(&model.AddressInput{
		Street:     "Rua A",
		Number:     "42",
		Cep:        "89229780",
		Complement: "Apto 3",
	})
	require.NoError(t, err)
	assert.Equal(t, 42, address.Number)
	assert.Equal(t, "Apto 3", address.Complement)
}

func TestParseUpdate(t *testing.T) {
	v := newValidator()

	t.Run("nothing supplied", func(t *testing.T) {
		update, err := v.ParseUpdate(&model.AddressInput{Street: "", Number: json.Number("0")})
		require.NoError(t, err)
		assert.True(t, update.IsEmpty())
	})

	t.Run("only complement", func(t *testing.T) {
		update, err := v.ParseUpdate(&model.AddressInput{Complement: "Casa 2"})
		require.NoError(t, err)
		require.NotNil(t, update.Complement)
		assert.Equal(t, "Casa 2", *update.Complement)
		assert.Nil(t, update.Street)
		assert.Nil(t, update.Number)
		assert.Nil(t, update.Cep)
	})

	t.Run("cep normalized", func(t *testing.T) {
		update, err := v.ParseUpdate(&model.AddressInput{Cep: "89229-780"})
		require.NoError(t, err)
		assert.Equal(t, "89229780", *update.Cep)
	})

	t.Run("invalid number", func(t *testing.T) {
		_, err := v.ParseUpdate(&model.AddressInput{Number: "x"})
		require.Error(t, err)
		assert.Equal(t, MsgNumberNotNumeric, Message(err))
	})
}

func TestParseNumber(t *testing.T) {
	n, ok := parseNumber(float64(7))
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	_, ok = parseNumber(7.25)
	assert.False(t, ok)

	_, ok = parseNumber([]int{1})
	assert.False(t, ok)
}
