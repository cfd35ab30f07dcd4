package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestAddressUpdate_IsEmpty(t *testing.T) {
	assert.True(t, (&AddressUpdate{}).IsEmpty())
	assert.False(t, (&AddressUpdate{Complement: strPtr("apto 2")}).IsEmpty())
}

func TestAddressUpdate_Apply_OnlyComplement(t *testing.T) {
	current := &Address{ID: 1, Street: "Rua A", Number: 10, Cep: "89229780", CityID: 3}

	merged := (&AddressUpdate{Complement: strPtr("fundos")}).Apply(current)

	assert.Equal(t, "fundos", merged.Complement)
	assert.Equal(t, "Rua A", merged.Street)
	assert.Equal(t, 10, merged.Number)
	assert.Equal(t, "89229780", merged.Cep)
	assert.Empty(t, current.Complement, "original must not be mutated")
}

func TestAddressUpdate_Apply_AllFields(t *testing.T) {
	current := &Address{ID: 1, Street: "Rua A", Number: 10, Cep: "89229780"}

	merged := (&AddressUpdate{
		Street:     strPtr("Rua B"),
		Number:     intPtr(20),
		Complement: strPtr("casa"),
		Cep:        strPtr("01001000"),
	}).Apply(current)

	assert.Equal(t, &Address{ID: 1, Street: "Rua B", Number: 20, Complement: "casa", Cep: "01001000"}, merged)
}
