package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionKind names the operation a request asks for.
type TransactionKind string

const (
	KindView   TransactionKind = "VIEW"
	KindCredit TransactionKind = "CREDIT"
	KindDebit  TransactionKind = "DEBIT"
)

// String returns the kind's wire name.
func (k TransactionKind) String() string {
	return string(k)
}

// Mutates reports whether the kind changes the balance when accepted.
func (k TransactionKind) Mutates() bool {
	return k == KindCredit || k == KindDebit
}

// TransactionRequest is a single credit or debit asked of the ledger.
// It only lives for the duration of one validation.
type TransactionRequest struct {
	Kind      TransactionKind
	Amount    decimal.Decimal // exact amount as entered, never rounded
	RawAmount string          // input text as typed
	Parsed    bool            // false when RawAmount could not be used as an amount
	ParseErr  error           // why Parsed is false
}

// NewTransactionRequest parses raw into a request. A parse failure does not
// fail construction; the request is marked unparsed and the validator rejects it.
func NewTransactionRequest(kind TransactionKind, raw string) TransactionRequest {
	req := TransactionRequest{
		Kind:      kind,
		RawAmount: strings.TrimSpace(raw),
	}

	amount, err := ParseAmount(raw)
	return req.withAmount(amount, err)
}

// NewAmountRequest builds a request from an amount that is already a decimal.
func NewAmountRequest(kind TransactionKind, amount decimal.Decimal) TransactionRequest {
	req := TransactionRequest{Kind: kind}

	checked, err := CheckAmount(amount)
	if err == nil {
		req.RawAmount = checked.String()
	}
	return req.withAmount(checked, err)
}

func (r TransactionRequest) withAmount(amount decimal.Decimal, err error) TransactionRequest {
	if err != nil {
		r.ParseErr = err
		return r
	}

	r.Amount = amount
	r.Parsed = true
	return r
}
