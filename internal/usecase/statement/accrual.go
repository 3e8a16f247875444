package statement

import (
	"github.com/shopspring/decimal"

	"github.com/awesomegic/bankledger-backend/internal/domain"
)

var daysPerYear = decimal.NewFromInt(365)

type accrualGroup struct {
	rate    decimal.Decimal
	balance decimal.Decimal
	days    int64
}

// accrueInterest computes the month's simple (non-compounding) interest from
// the day-by-day balance series. Days are grouped by equality of their
// (rate, balance) pair across the whole month, NOT by contiguous date runs:
// two separated ranges sharing the same pair merge into one group. Per group
// the interest is balance * rate/100 * dayCount; the group sums are each
// annualized by 365 and the total is rounded half-up to 2 decimal places.
func accrueInterest(records []domain.DailyBalanceRecord) decimal.Decimal {
	if len(records) == 0 {
		return decimal.Zero
	}

	groups := make([]accrualGroup, 0, len(records))
	for _, rec := range records {
		matched := false
		for i := range groups {
			if groups[i].rate.Equal(rec.Rule.RatePercent) && groups[i].balance.Equal(rec.Balance) {
				groups[i].days++
				matched = true
				break
			}
		}
		if !matched {
			groups = append(groups, accrualGroup{
				rate:    rec.Rule.RatePercent,
				balance: rec.Balance,
				days:    1,
			})
		}
	}

	hundred := decimal.NewFromInt(100)
	total := decimal.Zero
	for _, g := range groups {
		earned := g.balance.Mul(g.rate.Div(hundred)).Mul(decimal.NewFromInt(g.days))
		total = total.Add(earned.Div(daysPerYear))
	}

	return total.Round(2)
}
