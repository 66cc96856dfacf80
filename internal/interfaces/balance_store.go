package interfaces

import "github.com/shopspring/decimal"

// BalanceStore holds the single balance of a session.
type BalanceStore interface {
	Balance() decimal.Decimal
	SetBalance(balance decimal.Decimal)
}
