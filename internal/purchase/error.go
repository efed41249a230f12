package purchase

import "errors"

var (
	// -- Validation & Input --
	ErrEmptyCart       = errors.New("cart is empty")
	ErrMissingEmail    = errors.New("buyer email is required")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrInvalidStatus   = errors.New("invalid fulfillment status")

	// -- Resource State --
	ErrNotFound     = errors.New("purchase not found")
	ErrUnknownOrder = errors.New("no purchase matches the payment's external reference")

	// -- External Systems --
	ErrGateway = errors.New("could not start payment")
)
