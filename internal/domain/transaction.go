package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of a ledger transaction
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "D"
	TransactionTypeWithdrawal TransactionType = "W"

	// TransactionTypeInterest only ever appears on the synthesized terminal
	// statement line. It is never recorded in the ledger.
	TransactionTypeInterest TransactionType = "I"
)

// Transaction represents a single dated deposit or withdrawal on an account.
// Transactions are append-only: once recorded they are never mutated or deleted.
type Transaction struct {
	ID        string // derived: YYYYMMDD-NN, assigned at insertion time
	AccountID string
	Date      time.Time // calendar day, UTC midnight
	Type      TransactionType
	Amount    decimal.Decimal // always positive, at most 2 decimal places
}

// Validate ensures a candidate transaction adheres to domain rules before it
// is recorded. The derived ID is not checked here; it is assigned afterwards.
func (t *Transaction) Validate() error {
	if t.AccountID == "" {
		return &MalformedInputError{Value: t.AccountID, Constraint: "account id must not be empty"}
	}

	if t.Type != TransactionTypeDeposit && t.Type != TransactionTypeWithdrawal {
		return &UnknownTransactionTypeError{Value: string(t.Type)}
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return &MalformedInputError{Value: t.Amount.String(), Constraint: "amount must be greater than 0"}
	}

	if t.Amount.Exponent() < -2 {
		return &MalformedInputError{Value: t.Amount.String(), Constraint: "amount must have at most 2 decimal places"}
	}

	return nil
}

// ParseTransactionType parses a D/W token (case-insensitive).
func ParseTransactionType(token string) (TransactionType, error) {
	switch strings.ToUpper(token) {
	case "D":
		return TransactionTypeDeposit, nil
	case "W":
		return TransactionTypeWithdrawal, nil
	default:
		return "", &UnknownTransactionTypeError{Value: token}
	}
}

// ParseAmount parses a monetary amount token: positive, at most 2 decimal places.
func ParseAmount(token string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(token)
	if err != nil || amount.LessThanOrEqual(decimal.Zero) || amount.Exponent() < -2 {
		return decimal.Decimal{}, &MalformedInputError{
			Value:      token,
			Constraint: "amount must be greater than 0 and have at most 2 decimal places",
		}
	}
	return amount, nil
}

// NextTransactionID derives the id for a transaction dated date, given the
// account's existing transactions. The id is <YYYYMMDD>-<NN> where NN is the
// 2-digit, 1-based count of transactions already recorded on that same date.
// It is a pure function of the existing list, not a mutable counter.
func NextTransactionID(existing []Transaction, date time.Time) string {
	countOnDate := 0
	for _, tx := range existing {
		if tx.Date.Equal(date) {
			countOnDate++
		}
	}

	return fmt.Sprintf("%s-%02d", date.Format(DateLayout), countOnDate+1)
}

// AccountBalance computes the current balance as sum(deposits) - sum(withdrawals)
// over the full transaction list, irrespective of date ordering. This is the
// point-in-time total used to validate withdrawals.
func AccountBalance(txns []Transaction) decimal.Decimal {
	balance := decimal.Zero
	for _, tx := range txns {
		switch tx.Type {
		case TransactionTypeDeposit:
			balance = balance.Add(tx.Amount)
		case TransactionTypeWithdrawal:
			balance = balance.Sub(tx.Amount)
		}
	}
	return balance
}

// ApplyTransaction applies a single transaction to a running balance.
// An unknown type here is an internal-consistency failure: validation must
// reject it long before balance computation.
func ApplyTransaction(balance decimal.Decimal, tx Transaction) (decimal.Decimal, error) {
	switch tx.Type {
	case TransactionTypeDeposit:
		return balance.Add(tx.Amount), nil
	case TransactionTypeWithdrawal:
		return balance.Sub(tx.Amount), nil
	default:
		return decimal.Decimal{}, &UnknownTransactionTypeError{Value: string(tx.Type)}
	}
}

// SortChronological returns a copy of txns ordered by date, then by derived id.
// The id embeds the same-day sequence, so this is a stable chronological order
// within each day. Stores give no ordering guarantee, so callers sort when
// chronology matters.
func SortChronological(txns []Transaction) []Transaction {
	sorted := make([]Transaction, len(txns))
	copy(sorted, txns)

	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].ID < sorted[j].ID
	})

	return sorted
}
