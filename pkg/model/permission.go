package model

import "time"

const (
	PermissionDescriptionMinLength = 3
	PermissionDescriptionMaxLength = 30
)

type Permission struct {
	ID          int64     `json:"id" db:"id" bson:"_id"`
	Description string    `json:"description" db:"description" bson:"description" validate:"required,min=3,max=30,uppercase"`
	CreatedAt   time.Time `json:"-" db:"created_at" bson:"created_at"`
}

// Capabilities checked by the authorization gate.
const (
	PermissionRead   = "READ"
	PermissionWrite  = "WRITE"
	PermissionUpdate = "UPDATE"
	PermissionDelete = "DELETE"
)
