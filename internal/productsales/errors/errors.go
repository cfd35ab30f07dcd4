package errors

import "errors"

var (
	ErrSaleNotFound = errors.New("sale not found")

	ErrLineItemNotFound = errors.New("product is not part of the sale")
)
