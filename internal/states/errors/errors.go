package errors

import "errors"

var (
	ErrStateNotFound = errors.New("state not found")

	ErrCityNotFound = errors.New("city not found")

	ErrDuplicateCity = errors.New("city already exists in state")
)
