package models

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// CentsPlaces is the number of fractional digits a balance is kept at.
const CentsPlaces = 2

const (
	// maxAmountScale bounds the fractional digits accepted in an amount.
	// Comparing or adding decimals rescales them to the smaller exponent, so
	// the exponent has to stay small for every check to return at once.
	maxAmountScale = 64

	// maxAmountIntegerDigits is the integer digit count above which an amount
	// is past MaxTransactionAmount whatever its digits are.
	maxAmountIntegerDigits = 7
)

var (
	// InitialBalance is the balance every new session starts with.
	InitialBalance = decimal.RequireFromString("1000.00")

	// MaxBalance is the highest balance a credit may reach.
	MaxBalance = decimal.RequireFromString("999999.99")

	// MaxTransactionAmount is the largest amount a single credit or debit may carry.
	MaxTransactionAmount = decimal.RequireFromString("999999.99")
)

// ParseAmount reads user input as an exact decimal amount. The value is kept
// as entered; rounding only happens to the balance an accepted outcome produces.
//
// Input that is not a plain finite decimal number, or that carries more than
// maxAmountScale fractional digits, yields ErrInvalidAmount. Positive input whose
// magnitude is certainly past the transaction limit yields
// ErrAmountExceedsTransactionLimit without being compared digit by digit.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}

	return CheckAmount(amount)
}

// CheckAmount bounds the exponent of amount so later arithmetic stays cheap.
// Zero passes through whatever its exponent; the validator rejects it.
func CheckAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsZero() {
		return decimal.Zero, nil
	}

	exp := int64(amount.Exponent())
	if exp < -maxAmountScale {
		return decimal.Zero, ErrInvalidAmount
	}

	if exp > 0 && coefficientDigits(amount)+exp > maxAmountIntegerDigits {
		if amount.IsNegative() {
			return decimal.Zero, ErrInvalidAmount
		}
		return decimal.Zero, ErrAmountExceedsTransactionLimit
	}

	return amount, nil
}

func coefficientDigits(d decimal.Decimal) int64 {
	c := d.Coefficient()
	return int64(len(new(big.Int).Abs(c).String()))
}

// Quantize rounds half-up to whole cents. Balances handled by the ledger are
// never negative, so shopspring's half-away-from-zero rounding is half-up for
// every value it sees.
func Quantize(d decimal.Decimal) decimal.Decimal {
	return d.Round(CentsPlaces)
}

// FormatAmount renders d with exactly two fractional digits.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(CentsPlaces)
}
