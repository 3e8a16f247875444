package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyBalanceRecord is the end-of-day balance of one calendar day of a
// statement month, together with the interest rule in force on that day.
// Records are derived fresh on every statement request and never persisted.
type DailyBalanceRecord struct {
	Date    time.Time
	Balance decimal.Decimal
	Rule    InterestRule
}

// StatementLine is one row of a generated account statement: one per real
// transaction in the period, plus a single synthetic terminal line of type
// TransactionTypeInterest with an empty id.
type StatementLine struct {
	Date    time.Time
	ID      string
	Type    TransactionType
	Amount  decimal.Decimal
	Balance decimal.Decimal
}
