package product

import (
	"errors"
	"fmt"
)

var ErrProductNotFound = errors.New("product not found")

// InsufficientStockError aborts a fulfillment attempt. It carries enough detail
// for the caller to return an itemized reason instead of a generic failure.
type InsufficientStockError struct {
	Product   string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf(
		"insufficient stock for %s: requested %d, available %d",
		e.Product, e.Requested, e.Available,
	)
}
