package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/awesomegic/bankledger-backend/internal/domain"
)

// transactionRepository implements domain.TransactionRepository
type transactionRepository struct {
	db *DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *DB) domain.TransactionRepository {
	return &transactionRepository{db: db}
}

// AppendTransaction stores a new transaction. The table is append-only; the
// seq column records insertion order for listing.
func (r *transactionRepository) AppendTransaction(ctx context.Context, tx domain.Transaction) error {
	query := `
		INSERT INTO account_transactions (id, account_id, date, type, amount)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		tx.ID,
		tx.AccountID,
		tx.Date,
		string(tx.Type),
		tx.Amount.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to append transaction: %w", err)
	}

	return nil
}

// ListTransactions retrieves all transactions for an account in insertion order
func (r *transactionRepository) ListTransactions(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	query := `
		SELECT id, account_id, date, type, amount
		FROM account_transactions
		WHERE account_id = $1
		ORDER BY seq
	`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txns := make([]domain.Transaction, 0)
	for rows.Next() {
		var tx domain.Transaction
		var date time.Time
		var typeStr string
		var amountStr string

		if err := rows.Scan(&tx.ID, &tx.AccountID, &date, &typeStr, &amountStr); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		tx.Date = domain.DayOf(date.UTC())
		tx.Type = domain.TransactionType(typeStr)

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount: %w", err)
		}
		tx.Amount = amount

		txns = append(txns, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return txns, nil
}
