package database

import (
	"errors"
	"fmt"
)

var (
	// ErrItemNotFound is returned when a sale references an item that no
	// longer exists in the stock table.
	ErrItemNotFound = errors.New("item not found in stock")

	ErrEmptyItemName   = errors.New("item name must not be empty")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrNegativeStock   = errors.New("quantity must not be negative")
	ErrNegativePrice   = errors.New("unit price must not be negative")
)

// InsufficientStockError carries the available quantity so the caller can
// report it to the user.
type InsufficientStockError struct {
	Item      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d",
		e.Item, e.Requested, e.Available)
}
