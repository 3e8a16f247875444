package statement

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/awesomegic/bankledger-backend/internal/domain"
)

// priorBalance computes the balance anchor for a statement month: the net of
// all transactions dated strictly before firstOfMonth. No history means zero.
func priorBalance(txns []domain.Transaction, firstOfMonth time.Time) decimal.Decimal {
	balance := decimal.Zero
	for _, tx := range txns {
		if !tx.Date.Before(firstOfMonth) {
			continue
		}
		switch tx.Type {
		case domain.TransactionTypeDeposit:
			balance = balance.Add(tx.Amount)
		case domain.TransactionTypeWithdrawal:
			balance = balance.Sub(tx.Amount)
		}
	}
	return balance
}

// reconstructMonth replays the transaction history into one end-of-day balance
// record per calendar day of the target month, seeded by the prior-balance
// anchor. Same-day deposits and withdrawals are netted for the day's ending
// balance; the running balance carries across days with no activity.
// Any day without an applicable rule aborts the whole reconstruction.
func reconstructMonth(
	txns []domain.Transaction,
	table domain.RateTable,
	firstOfMonth time.Time,
	anchor decimal.Decimal,
) ([]domain.DailyBalanceRecord, error) {
	firstOfNextMonth := firstOfMonth.AddDate(0, 1, 0)

	records := make([]domain.DailyBalanceRecord, 0, 31)
	running := anchor

	for day := firstOfMonth; day.Before(firstOfNextMonth); day = day.AddDate(0, 0, 1) {
		rule, err := table.RuleOn(day)
		if err != nil {
			return nil, err
		}

		net := decimal.Zero
		for _, tx := range txns {
			if !tx.Date.Equal(day) {
				continue
			}
			switch tx.Type {
			case domain.TransactionTypeDeposit:
				net = net.Add(tx.Amount)
			case domain.TransactionTypeWithdrawal:
				net = net.Sub(tx.Amount)
			}
		}
		running = running.Add(net)

		records = append(records, domain.DailyBalanceRecord{
			Date:    day,
			Balance: running,
			Rule:    rule,
		})
	}

	return records, nil
}
