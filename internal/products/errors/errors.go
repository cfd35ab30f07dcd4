package errors

import "errors"

var ErrNotFound = errors.New("product not found")
