package domain

import "context"

// RuleRepository defines the interface for interest rule persistence operations
type RuleRepository interface {
	// UpsertRule stores a rule, replacing any existing rule that shares the
	// same effective date
	UpsertRule(ctx context.Context, rule InterestRule) error

	// ListRules retrieves all stored rules. No ordering guarantee; callers
	// normalize through NewRateTable when order or dedup matters
	ListRules(ctx context.Context) ([]InterestRule, error)
}

// TransactionRepository defines the interface for transaction persistence operations
type TransactionRepository interface {
	// AppendTransaction stores a new transaction. Append-only: existing
	// transactions are never touched
	AppendTransaction(ctx context.Context, tx Transaction) error

	// ListTransactions retrieves all transactions for an account in insertion
	// order. Chronological order is not guaranteed; callers sort when needed
	ListTransactions(ctx context.Context, accountID string) ([]Transaction, error)
}
