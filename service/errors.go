package service

import "errors"

// Sentinel errors for the order workflow. Wrapped with the offending
// identity before they reach the caller; match with errors.Is.
var (
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidInput      = errors.New("invalid input")
)
