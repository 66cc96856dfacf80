package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/sheikh-saqib/session-account-ledger/internal/models"
	"github.com/shopspring/decimal"
)

// BalanceChanged is emitted after a credit or debit has been committed.
// Money fields carry exactly two fractional digits.
type BalanceChanged struct {
	EventID         string    `json:"event_id"`
	SessionID       string    `json:"session_id"`
	Kind            string    `json:"kind"`
	Amount          string    `json:"amount"`
	PreviousBalance string    `json:"previous_balance"`
	NewBalance      string    `json:"new_balance"`
	OccurredAt      time.Time `json:"occurred_at"`
}

func NewBalanceChanged(sessionID string, req models.TransactionRequest, previous, current decimal.Decimal, at time.Time) BalanceChanged {
	return BalanceChanged{
		EventID:         uuid.New().String(),
		SessionID:       sessionID,
		Kind:            req.Kind.String(),
		Amount:          models.FormatAmount(req.Amount),
		PreviousBalance: models.FormatAmount(previous),
		NewBalance:      models.FormatAmount(current),
		OccurredAt:      at.UTC(),
	}
}
