package model

import "time"

type Address struct {
	ID         int64     `json:"id" db:"id" bson:"_id"`
	Street     string    `json:"street" db:"street" bson:"street" validate:"required,max=255"`
	Number     int       `json:"number" db:"number" bson:"number" validate:"gte=0"`
	Complement string    `json:"complement" db:"complement" bson:"complement" validate:"max=255"`
	Cep        string    `json:"cep" db:"cep" bson:"cep" validate:"len=8,numeric"`
	CityID     int64     `json:"city_id,omitempty" db:"city_id" bson:"city_id"`
	City       *City     `json:"city,omitempty" db:"-" bson:"-"`
	CreatedAt  time.Time `json:"-" db:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"-" db:"updated_at" bson:"updated_at"`
}

// AddressInput is the raw request body for address create and update. Fields stay
// untyped so that type errors ("must be a string", "must be a number") can be
// reported per field.
type AddressInput struct {
	Street     any `json:"street"`
	Number     any `json:"number"`
	Complement any `json:"complement"`
	Cep        any `json:"cep"`
}

// AddressUpdate holds the fields of a partial update. Nil means "keep current value".
type AddressUpdate struct {
	Street     *string
	Number     *int
	Complement *string
	Cep        *string
}

func (u *AddressUpdate) IsEmpty() bool {
	return u.Street == nil && u.Number == nil && u.Complement == nil && u.Cep == nil
}

// Apply merges the update into a copy of the address.
func (u *AddressUpdate) Apply(a *Address) *Address {
	merged := *a
	if u.Street != nil {
		merged.Street = *u.Street
	}
	if u.Number != nil {
		merged.Number = *u.Number
	}
	if u.Complement != nil {
		merged.Complement = *u.Complement
	}
	if u.Cep != nil {
		merged.Cep = *u.Cep
	}
	return &merged
}
