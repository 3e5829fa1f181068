package order

import "errors"

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrEmptyReference = errors.New("payment reference is required")
	ErrNoItems        = errors.New("order must contain at least one item")
	ErrInvalidItem    = errors.New("item quantity must be greater than zero")
)
