package model

import "errors"

// Validation errors
var (
	// ErrInvalidQuantityOrPrice quantity or price is not strictly positive, or commission is negative
	ErrInvalidQuantityOrPrice = errors.New("quantity and price must be positive")
	// ErrInvalidAmount deposit or withdraw amount is not strictly positive
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInvalidRequest missing user, symbol or unknown side/asset type
	ErrInvalidRequest = errors.New("invalid request")
	// ErrInvalidMethod unknown optimization method
	ErrInvalidMethod = errors.New("invalid optimization method")
	// ErrInvalidTolerance unknown risk tolerance
	ErrInvalidTolerance = errors.New("invalid risk tolerance")
)

// Business rule errors
var (
	// ErrInsufficientHoldings sell exceeds held quantity
	ErrInsufficientHoldings = errors.New("insufficient holdings")
	// ErrNoSuchPosition sell on a symbol the user does not hold
	ErrNoSuchPosition = errors.New("no such position")
	// ErrInsufficientFunds withdraw exceeds current capital
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Infrastructure errors
var (
	// ErrConcurrentModification lock or serialization conflict, safe to retry
	ErrConcurrentModification = errors.New("concurrent modification")
	// ErrDataUnavailable price or history is missing
	ErrDataUnavailable = errors.New("data unavailable")
)
