package ledger

import (
	"errors"

	"github.com/sheikh-saqib/session-account-ledger/internal/models"
	"github.com/shopspring/decimal"
)

// Validator decides whether a credit or debit may be applied to a balance.
// It holds no state and is safe to share.
type Validator struct{}

// EvaluateRaw parses raw as an amount and evaluates it.
func (v Validator) EvaluateRaw(current decimal.Decimal, kind models.TransactionKind, raw string) models.Outcome {
	return v.Evaluate(current, models.NewTransactionRequest(kind, raw))
}

// Evaluate maps the current balance and a request to an outcome.
// Rules compare the amount exactly as entered; only an accepted balance is
// rounded to cents. Rejections always carry the unchanged current balance.
func (v Validator) Evaluate(current decimal.Decimal, req models.TransactionRequest) models.Outcome {
	switch req.Kind {
	case models.KindView:
		return models.Accept(req.Kind, current)
	case models.KindCredit, models.KindDebit:
	default:
		return models.Reject(req.Kind, current, models.ReasonUnsupportedOperation)
	}

	if reason := checkAmount(req); reason != models.ReasonNone {
		return models.Reject(req.Kind, current, reason)
	}

	if req.Kind == models.KindCredit {
		candidate := current.Add(req.Amount)
		if candidate.GreaterThan(models.MaxBalance) {
			return models.Reject(req.Kind, current, models.ReasonExceedsMaximumBalance)
		}
		return models.Accept(req.Kind, candidate)
	}

	// Debiting the whole balance is allowed and leaves exactly zero.
	if req.Amount.GreaterThan(current) {
		return models.Reject(req.Kind, current, models.ReasonInsufficientFunds)
	}
	return models.Accept(req.Kind, current.Sub(req.Amount))
}

func checkAmount(req models.TransactionRequest) models.ReasonCode {
	if !req.Parsed {
		if errors.Is(req.ParseErr, models.ErrAmountExceedsTransactionLimit) {
			return models.ReasonAmountExceedsTransactionLimit
		}
		return models.ReasonInvalidAmount
	}
	if !req.Amount.IsPositive() {
		return models.ReasonInvalidAmount
	}
	if req.Amount.GreaterThan(models.MaxTransactionAmount) {
		return models.ReasonAmountExceedsTransactionLimit
	}
	return models.ReasonNone
}
