package product

import "errors"

var (
	// -- Validation & Input --
	ErrEmptyName    = errors.New("product name cannot be empty")
	ErrInvalidPrice = errors.New("product price must be positive")

	// -- Resource State --
	ErrNotFound          = errors.New("product not found")
	ErrUnavailable       = errors.New("product not available")
	ErrInsufficientStock = errors.New("insufficient stock")
)
