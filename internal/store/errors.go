package store

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateUser is returned when the username or email is already taken.
	ErrDuplicateUser = errors.New("username or email already registered")
	// ErrOutOfStock is returned by PurchaseSweet when the sweet is absent or
	// holds fewer units than requested. The two conditions are deliberately
	// not distinguished; callers report them as one failure.
	ErrOutOfStock = errors.New("sweet not found or out of stock")
	// ErrInvalidQuantity is returned when a purchase or restock quantity is
	// not a positive integer.
	ErrInvalidQuantity = errors.New("quantity must be positive")
)
