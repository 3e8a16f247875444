package statement

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/awesomegic/bankledger-backend/internal/domain"
)

func records(from time.Time, days int, balance string, rate string) []domain.DailyBalanceRecord {
	out := make([]domain.DailyBalanceRecord, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, domain.DailyBalanceRecord{
			Date:    from.AddDate(0, 0, i),
			Balance: decimal.RequireFromString(balance),
			Rule:    domain.InterestRule{RatePercent: decimal.RequireFromString(rate)},
		})
	}
	return out
}

func TestAccrueInterest_Empty(t *testing.T) {
	assert.True(t, accrueInterest(nil).IsZero())
	assert.True(t, accrueInterest([]domain.DailyBalanceRecord{}).IsZero())
}

func TestAccrueInterest_ReferenceMonth(t *testing.T) {
	june := domain.NewDate(2023, time.June, 1)

	series := records(june, 14, "250.00", "1.90")
	series = append(series, records(domain.NewDate(2023, time.June, 15), 11, "250.00", "2.20")...)
	series = append(series, records(domain.NewDate(2023, time.June, 26), 5, "130.00", "2.20")...)

	// (250*1.90%*14 + 250*2.20%*11 + 130*2.20%*5) / 365 = 0.387...
	interest := accrueInterest(series)
	assert.True(t, interest.Equal(decimal.RequireFromString("0.39")), "got %s", interest)
}

// Two separated date ranges with the same (rate, balance) pair belong to ONE
// group. For simple interest the sum is unchanged, so this documents the
// grouping rule rather than a numeric difference.
func TestAccrueInterest_SeparatedRangesMerge(t *testing.T) {
	june := domain.NewDate(2023, time.June, 1)

	// 10 days at (100, 5%), 10 days at (200, 5%), back to 10 days at (100, 5%)
	series := records(june, 10, "100.00", "5.00")
	series = append(series, records(june.AddDate(0, 0, 10), 10, "200.00", "5.00")...)
	series = append(series, records(june.AddDate(0, 0, 20), 10, "100.00", "5.00")...)

	// Groups: (100, 5%) x 20 days, (200, 5%) x 10 days
	// (100*5%*20 + 200*5%*10) / 365 = 200/365 = 0.5479... -> 0.55
	interest := accrueInterest(series)
	assert.True(t, interest.Equal(decimal.RequireFromString("0.55")), "got %s", interest)
}

// Same numeric balance under different rates stays in separate groups.
func TestAccrueInterest_RateChangeSplitsGroups(t *testing.T) {
	june := domain.NewDate(2023, time.June, 1)

	series := records(june, 15, "100.00", "1.00")
	series = append(series, records(june.AddDate(0, 0, 15), 15, "100.00", "2.00")...)

	// (100*1%*15 + 100*2%*15) / 365 = 45/365 = 0.1232... -> 0.12
	interest := accrueInterest(series)
	assert.True(t, interest.Equal(decimal.RequireFromString("0.12")), "got %s", interest)
}

// Balances arriving with different exponents (130 vs 130.00) are the same
// value and must share a group.
func TestAccrueInterest_GroupsByValueNotRepresentation(t *testing.T) {
	june := domain.NewDate(2023, time.June, 1)

	series := []domain.DailyBalanceRecord{
		{Date: june, Balance: decimal.NewFromInt(130), Rule: domain.InterestRule{RatePercent: decimal.RequireFromString("2.20")}},
		{Date: june.AddDate(0, 0, 1), Balance: decimal.RequireFromString("130.00"), Rule: domain.InterestRule{RatePercent: decimal.RequireFromString("2.2")}},
	}

	// One group of 2 days: 130*2.2%*2/365 = 0.01567 -> 0.02
	interest := accrueInterest(series)
	assert.True(t, interest.Equal(decimal.RequireFromString("0.02")), "got %s", interest)
}

func TestAccrueInterest_RoundsHalfUp(t *testing.T) {
	june := domain.NewDate(2023, time.June, 1)

	// 365 * 1% * 1 / 365 = 0.01 exactly; 182.5 gives 0.005 -> rounds up to 0.01
	series := records(june, 1, "182.50", "1.00")
	interest := accrueInterest(series)
	assert.True(t, interest.Equal(decimal.RequireFromString("0.01")), "got %s", interest)
}
