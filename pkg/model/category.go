package model

import "time"

const (
	CategoryNameMinLength = 3
	CategoryNameMaxLength = 15
)

type Category struct {
	ID        int64     `json:"id" db:"id" bson:"_id"`
	Name      string    `json:"name" db:"name" bson:"name" validate:"required,min=3,max=15"`
	CreatedAt time.Time `json:"-" db:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"-" db:"updated_at" bson:"updated_at"`
}

type Product struct {
	ID             int64   `json:"id" db:"id" bson:"_id"`
	Name           string  `json:"name" db:"name" bson:"name"`
	SuggestedPrice float64 `json:"suggested_price" db:"suggested_price" bson:"suggested_price"`
	CategoryID     int64   `json:"category_id" db:"category_id" bson:"category_id"`
}
