package models

import "errors"

// Validation and state-violation errors are detected before any write, so a
// rejected operation leaves the store untouched.
var (
	ErrorProductNotFound  = errors.New("product not found")
	ErrorOrderNotFound    = errors.New("order not found")
	ErrorImportNotFound   = errors.New("import record not found")
	ErrorCustomerNotFound = errors.New("customer not found")
	ErrorCategoryNotFound = errors.New("category not found")

	ErrorEmptyCart         = errors.New("order has no items")
	ErrorInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrorInvalidAmount     = errors.New("amount must be greater than zero")
	ErrorInvalidStatus     = errors.New("invalid order status")
	ErrorInvalidMethod     = errors.New("invalid payment method")
	ErrorInsufficientStock = errors.New("insufficient stock")

	// ErrorTerminalStatus is a safe no-op for callers: double-clicks and
	// concurrent screens are expected to trigger it.
	ErrorTerminalStatus    = errors.New("order is in a terminal status")
	ErrorOrderNotCompleted = errors.New("order is not completed")
	ErrorOverpayment       = errors.New("payment exceeds outstanding balance")
	ErrorImportHasNoCost   = errors.New("import record has no recorded cost")
)
