package errors

import "errors"

var (
	ErrNotFound = errors.New("address not found")

	ErrDuplicate = errors.New("address already exists")

	ErrInUse = errors.New("address is referenced by other records")
)
