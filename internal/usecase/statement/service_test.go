package statement

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/awesomegic/bankledger-backend/internal/domain"
)

// MockRuleRepository is a mock implementation of RuleRepository for testing
type MockRuleRepository struct {
	mock.Mock
}

func (m *MockRuleRepository) UpsertRule(ctx context.Context, rule domain.InterestRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRuleRepository) ListRules(ctx context.Context) ([]domain.InterestRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InterestRule), args.Error(1)
}

// MockTransactionRepository is a mock implementation of TransactionRepository for testing
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) AppendTransaction(ctx context.Context, tx domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func referenceRules() []domain.InterestRule {
	return []domain.InterestRule{
		{EffectiveDate: domain.NewDate(2023, time.January, 1), RuleID: "RULE01", RatePercent: decimal.RequireFromString("1.95")},
		{EffectiveDate: domain.NewDate(2023, time.May, 20), RuleID: "RULE02", RatePercent: decimal.RequireFromString("1.90")},
		{EffectiveDate: domain.NewDate(2023, time.June, 15), RuleID: "RULE03", RatePercent: decimal.RequireFromString("2.20")},
	}
}

func referenceTransactions() []domain.Transaction {
	return []domain.Transaction{
		{ID: "20230501-01", AccountID: "AC001", Date: domain.NewDate(2023, time.May, 1), Type: domain.TransactionTypeDeposit, Amount: decimal.RequireFromString("100.00")},
		{ID: "20230601-01", AccountID: "AC001", Date: domain.NewDate(2023, time.June, 1), Type: domain.TransactionTypeDeposit, Amount: decimal.RequireFromString("150.00")},
		{ID: "20230626-01", AccountID: "AC001", Date: domain.NewDate(2023, time.June, 26), Type: domain.TransactionTypeWithdrawal, Amount: decimal.RequireFromString("20.00")},
		{ID: "20230626-02", AccountID: "AC001", Date: domain.NewDate(2023, time.June, 26), Type: domain.TransactionTypeWithdrawal, Amount: decimal.RequireFromString("100.00")},
	}
}

func assertLine(t *testing.T, line domain.StatementLine, date time.Time, id string, txType domain.TransactionType, amount, balance string) {
	t.Helper()
	assert.True(t, line.Date.Equal(date), "date: got %s want %s", line.Date, date)
	assert.Equal(t, id, line.ID)
	assert.Equal(t, txType, line.Type)
	assert.True(t, line.Amount.Equal(decimal.RequireFromString(amount)), "amount: got %s want %s", line.Amount, amount)
	assert.True(t, line.Balance.Equal(decimal.RequireFromString(balance)), "balance: got %s want %s", line.Balance, balance)
}

func TestGenerateStatement_ReferenceScenario(t *testing.T) {
	ctx := context.Background()
	mockRuleRepo := new(MockRuleRepository)
	mockTxRepo := new(MockTransactionRepository)

	service := NewStatementService(mockRuleRepo, mockTxRepo)

	mockTxRepo.On("ListTransactions", ctx, "AC001").Return(referenceTransactions(), nil)
	mockRuleRepo.On("ListRules", ctx).Return(referenceRules(), nil)

	lines, err := service.GenerateStatement(ctx, "AC001", domain.NewDate(2023, time.June, 1))

	assert.NoError(t, err)
	assert.Len(t, lines, 4)
	assertLine(t, lines[0], domain.NewDate(2023, time.June, 1), "20230601-01", domain.TransactionTypeDeposit, "150.00", "250.00")
	assertLine(t, lines[1], domain.NewDate(2023, time.June, 26), "20230626-01", domain.TransactionTypeWithdrawal, "20.00", "230.00")
	assertLine(t, lines[2], domain.NewDate(2023, time.June, 26), "20230626-02", domain.TransactionTypeWithdrawal, "100.00", "130.00")
	assertLine(t, lines[3], domain.NewDate(2023, time.June, 30), "", domain.TransactionTypeInterest, "0.39", "130.39")
}

func TestGenerateStatement_EmptyAccountSkipsRateLookup(t *testing.T) {
	ctx := context.Background()
	mockRuleRepo := new(MockRuleRepository)
	mockTxRepo := new(MockTransactionRepository)

	service := NewStatementService(mockRuleRepo, mockTxRepo)

	mockTxRepo.On("ListTransactions", ctx, "AC404").Return([]domain.Transaction{}, nil)

	lines, err := service.GenerateStatement(ctx, "AC404", domain.NewDate(2023, time.June, 1))

	// No history: empty statement, no error, and no interest fabricated.
	// Rules are never consulted, so a month with no rules defined still succeeds.
	assert.NoError(t, err)
	assert.Empty(t, lines)
	mockRuleRepo.AssertNotCalled(t, "ListRules")
}

func TestGenerateStatement_MissingRateFailsWholeRequest(t *testing.T) {
	ctx := context.Background()
	mockRuleRepo := new(MockRuleRepository)
	mockTxRepo := new(MockTransactionRepository)

	service := NewStatementService(mockRuleRepo, mockTxRepo)

	mockTxRepo.On("ListTransactions", ctx, "AC001").Return(referenceTransactions(), nil)
	// The only rule takes effect mid-month: June 1..14 cannot be priced
	mockRuleRepo.On("ListRules", ctx).Return([]domain.InterestRule{
		{EffectiveDate: domain.NewDate(2023, time.June, 15), RuleID: "RULE03", RatePercent: decimal.RequireFromString("2.20")},
	}, nil)

	lines, err := service.GenerateStatement(ctx, "AC001", domain.NewDate(2023, time.June, 1))

	// No partial statement is returned
	var missing *domain.MissingRateError
	assert.ErrorAs(t, err, &missing)
	assert.True(t, missing.Date.Equal(domain.NewDate(2023, time.June, 1)))
	assert.Nil(t, lines)
}

func TestGenerateStatement_Idempotent(t *testing.T) {
	ctx := context.Background()
	mockRuleRepo := new(MockRuleRepository)
	mockTxRepo := new(MockTransactionRepository)

	service := NewStatementService(mockRuleRepo, mockTxRepo)

	mockTxRepo.On("ListTransactions", ctx, "AC001").Return(referenceTransactions(), nil)
	mockRuleRepo.On("ListRules", ctx).Return(referenceRules(), nil)

	first, err := service.GenerateStatement(ctx, "AC001", domain.NewDate(2023, time.June, 1))
	assert.NoError(t, err)
	second, err := service.GenerateStatement(ctx, "AC001", domain.NewDate(2023, time.June, 1))
	assert.NoError(t, err)

	assert.Equal(t, len(first), len(second))
	for i := range first {
		assert.True(t, first[i].Date.Equal(second[i].Date))
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].Type, second[i].Type)
		assert.True(t, first[i].Amount.Equal(second[i].Amount))
		assert.True(t, first[i].Balance.Equal(second[i].Balance))
	}
}

// A transaction dated the first day of the FOLLOWING month falls inside the
// statement period. Inherited boundary behavior, preserved exactly.
func TestGenerateStatement_IncludesFirstDayOfNextMonth(t *testing.T) {
	ctx := context.Background()
	mockRuleRepo := new(MockRuleRepository)
	mockTxRepo := new(MockTransactionRepository)

	service := NewStatementService(mockRuleRepo, mockTxRepo)

	txns := []domain.Transaction{
		{ID: "20230601-01", AccountID: "AC001", Date: domain.NewDate(2023, time.June, 1), Type: domain.TransactionTypeDeposit, Amount: decimal.RequireFromString("100.00")},
		{ID: "20230701-01", AccountID: "AC001", Date: domain.NewDate(2023, time.July, 1), Type: domain.TransactionTypeDeposit, Amount: decimal.RequireFromString("50.00")},
		{ID: "20230702-01", AccountID: "AC001", Date: domain.NewDate(2023, time.July, 2), Type: domain.TransactionTypeDeposit, Amount: decimal.RequireFromString("25.00")},
	}

	mockTxRepo.On("ListTransactions", ctx, "AC001").Return(txns, nil)
	mockRuleRepo.On("ListRules", ctx).Return(referenceRules(), nil)

	lines, err := service.GenerateStatement(ctx, "AC001", domain.NewDate(2023, time.June, 1))

	assert.NoError(t, err)
	// June line, July 1st line (included), interest line; July 2nd excluded
	assert.Len(t, lines, 3)
	assert.Equal(t, "20230601-01", lines[0].ID)
	assert.Equal(t, "20230701-01", lines[1].ID)
	assert.Equal(t, domain.TransactionTypeInterest, lines[2].Type)

	// The interest balance is anchored to the month's reconstruction and does
	// not include the next-month transaction.
	// June: 100.00 for 14 days at 1.90%, 16 days at 2.20% -> 0.17
	assertLine(t, lines[2], domain.NewDate(2023, time.June, 30), "", domain.TransactionTypeInterest, "0.17", "100.17")
}

func TestGenerateStatement_MonthWithNoTransactionsStillAccrues(t *testing.T) {
	ctx := context.Background()
	mockRuleRepo := new(MockRuleRepository)
	mockTxRepo := new(MockTransactionRepository)

	service := NewStatementService(mockRuleRepo, mockTxRepo)

	// All history is prior to the statement month; the balance still earns
	// interest every day of the month.
	txns := []domain.Transaction{
		{ID: "20230501-01", AccountID: "AC001", Date: domain.NewDate(2023, time.May, 1), Type: domain.TransactionTypeDeposit, Amount: decimal.RequireFromString("365.00")},
	}

	mockTxRepo.On("ListTransactions", ctx, "AC001").Return(txns, nil)
	mockRuleRepo.On("ListRules", ctx).Return([]domain.InterestRule{
		{EffectiveDate: domain.NewDate(2023, time.January, 1), RuleID: "RULE01", RatePercent: decimal.RequireFromString("10.00")},
	}, nil)

	lines, err := service.GenerateStatement(ctx, "AC001", domain.NewDate(2023, time.June, 1))

	assert.NoError(t, err)
	// 365.00 * 10% * 30 / 365 = 3.00
	assert.Len(t, lines, 1)
	assertLine(t, lines[0], domain.NewDate(2023, time.June, 30), "", domain.TransactionTypeInterest, "3.00", "368.00")
}
