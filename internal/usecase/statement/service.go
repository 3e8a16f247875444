package statement

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/awesomegic/bankledger-backend/internal/domain"
)

// StatementService generates monthly account statements with accrued interest
type StatementService struct {
	RuleRepo        domain.RuleRepository
	TransactionRepo domain.TransactionRepository
}

// NewStatementService creates a new StatementService instance
func NewStatementService(ruleRepo domain.RuleRepository, transactionRepo domain.TransactionRepository) *StatementService {
	return &StatementService{
		RuleRepo:        ruleRepo,
		TransactionRepo: transactionRepo,
	}
}

// GenerateStatement produces the statement for an account and target month
// (month must be the first day of the month). Output is one line per real
// transaction in the period, balances replayed from the prior-balance anchor,
// followed by a single synthetic interest line dated the last day of the month.
//
// The whole statement is recomputed from the full history on every call and
// nothing is cached, so unchanged inputs yield identical output.
//
// An account with no transaction history yields an empty statement and the
// rule store is never consulted: interest is not fabricated for an account
// that never had activity.
func (s *StatementService) GenerateStatement(ctx context.Context, accountID string, month time.Time) ([]domain.StatementLine, error) {
	txns, err := s.TransactionRepo.ListTransactions(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if len(txns) == 0 {
		return []domain.StatementLine{}, nil
	}

	rules, err := s.RuleRepo.ListRules(ctx)
	if err != nil {
		return nil, err
	}
	table := domain.NewRateTable(rules)

	firstOfMonth := domain.NewDate(month.Year(), month.Month(), 1)
	anchor := priorBalance(txns, firstOfMonth)

	lines, err := transactionLines(txns, firstOfMonth, anchor)
	if err != nil {
		return nil, err
	}

	records, err := reconstructMonth(txns, table, firstOfMonth, anchor)
	if err != nil {
		return nil, err
	}

	interest := accrueInterest(records)
	closing := records[len(records)-1].Balance.Add(interest)

	lines = append(lines, domain.StatementLine{
		Date:    domain.MonthEnd(firstOfMonth),
		ID:      "",
		Type:    domain.TransactionTypeInterest,
		Amount:  interest,
		Balance: closing,
	})

	return lines, nil
}

// transactionLines builds one statement line per transaction in the statement
// period, each balance reflecting the cumulative application of transactions
// in (date, id) order from the anchor.
//
// The period upper bound is the first day of the FOLLOWING month, inclusive.
// Narrowing it to the month's last day would change emitted statements.
func transactionLines(txns []domain.Transaction, firstOfMonth time.Time, anchor decimal.Decimal) ([]domain.StatementLine, error) {
	periodEnd := firstOfMonth.AddDate(0, 1, 0)

	inPeriod := make([]domain.Transaction, 0, len(txns))
	for _, tx := range txns {
		if !tx.Date.Before(firstOfMonth) && !tx.Date.After(periodEnd) {
			inPeriod = append(inPeriod, tx)
		}
	}
	inPeriod = domain.SortChronological(inPeriod)

	lines := make([]domain.StatementLine, 0, len(inPeriod)+1)
	running := anchor
	for _, tx := range inPeriod {
		var err error
		running, err = domain.ApplyTransaction(running, tx)
		if err != nil {
			return nil, err
		}

		lines = append(lines, domain.StatementLine{
			Date:    tx.Date,
			ID:      tx.ID,
			Type:    tx.Type,
			Amount:  tx.Amount,
			Balance: running,
		})
	}

	return lines, nil
}
