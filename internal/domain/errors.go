package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MalformedInputError reports input that failed format validation before any
// state was touched. Value is the offending token, Constraint the rule it broke.
type MalformedInputError struct {
	Value      string
	Constraint string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("%q is not valid input: %s", e.Value, e.Constraint)
}

// UnknownTransactionTypeError reports a transaction type outside {D, W}.
// It is rejected at validation time and must never reach balance computation.
type UnknownTransactionTypeError struct {
	Value string
}

func (e *UnknownTransactionTypeError) Error() string {
	return fmt.Sprintf("%q is not a valid transaction type", e.Value)
}

// InsufficientFundsError reports a withdrawal that would drive the account
// balance negative. The transaction is not recorded.
type InsufficientFundsError struct {
	AccountID string
	Balance   decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds on account %s: balance %s, requested withdrawal %s",
		e.AccountID, e.Balance.StringFixed(2), e.Requested.StringFixed(2))
}

// MissingRateError reports a day for which no interest rule is in force.
// A statement covering that day cannot be priced and the whole request fails.
type MissingRateError struct {
	Date time.Time
}

func (e *MissingRateError) Error() string {
	return fmt.Sprintf("no interest rule in force on %s", e.Date.Format(DateLayout))
}
