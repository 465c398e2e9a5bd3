package core

import (
	"errors"
	"fmt"
)

// Business errors the web adapter maps to specific HTTP responses.
var (
	ErrInventoryNotFound = errors.New("inventory item not found")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrBillNotFound      = errors.New("bill not found")

	// ErrCustomerExists is returned when a creation email is already taken.
	ErrCustomerExists = errors.New("customer already exists")

	// ErrItemReferenced blocks deletion of inventory referenced by bill items.
	ErrItemReferenced = errors.New("inventory item is referenced by existing bills and cannot be deleted")

	// ErrValidation wraps rejected inputs; validation errors carry the
	// detail via fmt.Errorf("...: %w", ErrValidation).
	ErrValidation = errors.New("invalid input")
)

// InsufficientStockError aborts the whole billing transaction when a line
// requests more units than are on hand.
type InsufficientStockError struct {
	Item      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for %s: %d on hand, %d requested", e.Item, e.Available, e.Requested)
}
