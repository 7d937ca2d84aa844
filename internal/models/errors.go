package models

import "errors"

// Failure taxonomy for the ledger-consistency core. Handlers map these
// to HTTP statuses with errors.Is; stores wrap them with context.
var (
	// ErrNotFound - an unknown id was referenced.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidAmount - a zero or negative amount/quantity was posted.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrEmptyCart - a sale was attempted with no line items.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrMissingCustomer - an Utang sale without a resolvable customer.
	ErrMissingCustomer = errors.New("utang sale requires a registered customer")

	// ErrInsufficientStock - strict mode only: the cart asks for more
	// than is on the shelf.
	ErrInsufficientStock = errors.New("insufficient stock")
)
