package models

import "errors"

var (
	ErrInvalidAmount                 = errors.New("invalid amount")
	ErrAmountExceedsTransactionLimit = errors.New("amount exceeds transaction limit")
	ErrExceedsMaximumBalance         = errors.New("transaction would exceed maximum balance")
	ErrInsufficientFunds             = errors.New("insufficient funds")
	ErrUnsupportedOperation          = errors.New("unsupported operation")
)
