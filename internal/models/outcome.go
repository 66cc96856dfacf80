package models

import "github.com/shopspring/decimal"

// ReasonCode explains why a transaction was rejected.
type ReasonCode string

const (
	ReasonNone                          ReasonCode = ""
	ReasonInvalidAmount                 ReasonCode = "INVALID_AMOUNT"
	ReasonAmountExceedsTransactionLimit ReasonCode = "AMOUNT_EXCEEDS_TRANSACTION_LIMIT"
	ReasonExceedsMaximumBalance         ReasonCode = "EXCEEDS_MAXIMUM_BALANCE"
	ReasonInsufficientFunds             ReasonCode = "INSUFFICIENT_FUNDS"
	ReasonUnsupportedOperation          ReasonCode = "UNSUPPORTED_OPERATION"
)

var reasonErrors = map[ReasonCode]error{
	ReasonInvalidAmount:                 ErrInvalidAmount,
	ReasonAmountExceedsTransactionLimit: ErrAmountExceedsTransactionLimit,
	ReasonExceedsMaximumBalance:         ErrExceedsMaximumBalance,
	ReasonInsufficientFunds:             ErrInsufficientFunds,
	ReasonUnsupportedOperation:          ErrUnsupportedOperation,
}

// Outcome is the result of validating one request.
// Balance is the new balance when Accepted and the untouched balance otherwise.
type Outcome struct {
	Kind     TransactionKind
	Accepted bool
	Balance  decimal.Decimal
	Reason   ReasonCode
}

// Accept builds an accepted outcome, rounding balance to cents.
func Accept(kind TransactionKind, balance decimal.Decimal) Outcome {
	return Outcome{
		Kind:     kind,
		Accepted: true,
		Balance:  Quantize(balance),
	}
}

// Reject builds a rejected outcome that keeps balance untouched.
func Reject(kind TransactionKind, balance decimal.Decimal, reason ReasonCode) Outcome {
	return Outcome{
		Kind:    kind,
		Balance: balance,
		Reason:  reason,
	}
}

// Err maps a rejection onto its sentinel error so callers can use errors.Is.
func (o Outcome) Err() error {
	if o.Accepted {
		return nil
	}

	return reasonErrors[o.Reason]
}
