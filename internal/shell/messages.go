package shell

import (
	"fmt"

	"github.com/sheikh-saqib/session-account-ledger/internal/models"
	"github.com/shopspring/decimal"
)

const (
	menuRule  = "--------------------------------"
	menuTitle = "Account Management System"

	promptChoice = "Enter your choice (1-4): "
	promptCredit = "Enter credit amount: "
	promptDebit  = "Enter debit amount: "

	msgInvalidChoice = "Invalid choice, please select 1-4."
	msgGoodbye       = "Exiting the program. Goodbye!"

	msgInsufficientFunds = "Insufficient funds for this debit."
	msgExceedsMaximum    = "Transaction would exceed maximum balance limit of $999,999.99"
	msgInvalidAmount     = "Invalid amount. Please enter a positive number."
	msgExceedsLimit      = "Amount exceeds maximum transaction limit of $999,999.99"
)

var menuLines = []string{
	menuRule,
	menuTitle,
	"1. View Balance",
	"2. Credit Account",
	"3. Debit Account",
	"4. Exit",
	menuRule,
}

var rejectionMessages = map[models.ReasonCode]string{
	models.ReasonInvalidAmount:                 msgInvalidAmount,
	models.ReasonAmountExceedsTransactionLimit: msgExceedsLimit,
	models.ReasonExceedsMaximumBalance:         msgExceedsMaximum,
	models.ReasonInsufficientFunds:             msgInsufficientFunds,
	models.ReasonUnsupportedOperation:          msgInvalidChoice,
}

// BalanceMessage renders the answer to a View request.
func BalanceMessage(balance decimal.Decimal) string {
	return fmt.Sprintf("Current balance: %s", models.FormatAmount(balance))
}

// OutcomeMessage renders a credit or debit outcome for the user.
func OutcomeMessage(o models.Outcome) string {
	if !o.Accepted {
		if msg, ok := rejectionMessages[o.Reason]; ok {
			return msg
		}
		return string(o.Reason)
	}

	switch o.Kind {
	case models.KindCredit:
		return fmt.Sprintf("Amount credited. New balance: %s", models.FormatAmount(o.Balance))
	case models.KindDebit:
		return fmt.Sprintf("Amount debited. New balance: %s", models.FormatAmount(o.Balance))
	default:
		return BalanceMessage(o.Balance)
	}
}
