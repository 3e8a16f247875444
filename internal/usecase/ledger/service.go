package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/awesomegic/bankledger-backend/internal/domain"
)

// RecordTransactionInput represents the input for recording a transaction
type RecordTransactionInput struct {
	AccountID string
	Date      time.Time
	Type      domain.TransactionType
	Amount    decimal.Decimal
}

// LedgerService records and lists account transactions
type LedgerService struct {
	TransactionRepo domain.TransactionRepository
}

// NewLedgerService creates a new LedgerService instance
func NewLedgerService(transactionRepo domain.TransactionRepository) *LedgerService {
	return &LedgerService{TransactionRepo: transactionRepo}
}

// RecordTransaction validates and appends a transaction to an account's ledger.
// Logic:
//  1. Build the candidate and validate it (type, amount bounds and precision)
//  2. Load the account's existing transactions
//  3. For a withdrawal, check the current balance (the total over all
//     existing transactions, not a date-scoped one) stays >= 0
//  4. Derive the id from the existing list and append
//
// The balance-check-then-append sequence is a read-modify-write; a concurrent
// host must serialize calls per account.
func (s *LedgerService) RecordTransaction(ctx context.Context, input RecordTransactionInput) (domain.Transaction, error) {
	tx := domain.Transaction{
		AccountID: input.AccountID,
		Date:      domain.DayOf(input.Date),
		Type:      input.Type,
		Amount:    input.Amount,
	}

	if err := tx.Validate(); err != nil {
		return domain.Transaction{}, err
	}

	existing, err := s.TransactionRepo.ListTransactions(ctx, input.AccountID)
	if err != nil {
		return domain.Transaction{}, err
	}

	if tx.Type == domain.TransactionTypeWithdrawal {
		balance := domain.AccountBalance(existing)
		if balance.Sub(tx.Amount).IsNegative() {
			return domain.Transaction{}, &domain.InsufficientFundsError{
				AccountID: input.AccountID,
				Balance:   balance,
				Requested: tx.Amount,
			}
		}
	}

	tx.ID = domain.NextTransactionID(existing, tx.Date)

	if err := s.TransactionRepo.AppendTransaction(ctx, tx); err != nil {
		return domain.Transaction{}, err
	}

	return tx, nil
}

// ListTransactions returns an account's transactions in chronological order
// (date, then same-day sequence) for display.
func (s *LedgerService) ListTransactions(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	txns, err := s.TransactionRepo.ListTransactions(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return domain.SortChronological(txns), nil
}
