package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// InterestRule represents an annual interest rate taking effect on a given
// date. A rule stays in force until a rule with a later effective date
// supersedes it. Rules are upserted by effective date and never deleted.
type InterestRule struct {
	EffectiveDate time.Time // calendar day, UTC midnight
	RuleID        string
	RatePercent   decimal.Decimal // annual rate, 0 < rate < 100
}

// Validate ensures the rule adheres to domain rules
func (r *InterestRule) Validate() error {
	if r.RuleID == "" {
		return &MalformedInputError{Value: r.RuleID, Constraint: "rule id must not be empty"}
	}

	if r.RatePercent.LessThanOrEqual(decimal.Zero) || r.RatePercent.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return &MalformedInputError{
			Value:      r.RatePercent.String(),
			Constraint: "interest rate must be greater than 0 and less than 100",
		}
	}

	return nil
}

// ParseRatePercent parses an interest rate token: greater than 0, less than 100.
func ParseRatePercent(token string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(token)
	if err != nil || rate.LessThanOrEqual(decimal.Zero) || rate.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return decimal.Decimal{}, &MalformedInputError{
			Value:      token,
			Constraint: "interest rate must be greater than 0 and less than 100",
		}
	}
	return rate, nil
}

// RateTable answers "which rule applies on day D" over an immutable set of
// interest rules. At most one rule is active per effective date: when the
// input contains several rules for the same date, the one appearing last
// supersedes the earlier ones (a resubmission fully replaces a rule).
type RateTable struct {
	rules []InterestRule // ascending by effective date, one per date
}

// NewRateTable builds a rate table from rules in any order.
func NewRateTable(rules []InterestRule) RateTable {
	byDate := make(map[string]int, len(rules))
	deduped := make([]InterestRule, 0, len(rules))

	for _, rule := range rules {
		key := rule.EffectiveDate.Format(DateLayout)
		if i, ok := byDate[key]; ok {
			deduped[i] = rule
			continue
		}
		byDate[key] = len(deduped)
		deduped = append(deduped, rule)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].EffectiveDate.Before(deduped[j].EffectiveDate)
	})

	return RateTable{rules: deduped}
}

// RuleOn returns the rule whose effective date is the latest date <= day.
// It fails with MissingRateError when every known rule takes effect after day;
// such a day cannot be priced.
func (t RateTable) RuleOn(day time.Time) (InterestRule, error) {
	// Index of the first rule effective after day; the one before it applies.
	i := sort.Search(len(t.rules), func(i int) bool {
		return t.rules[i].EffectiveDate.After(day)
	})
	if i == 0 {
		return InterestRule{}, &MissingRateError{Date: day}
	}

	return t.rules[i-1], nil
}

// Rules returns the table's rules in ascending effective-date order.
func (t RateTable) Rules() []InterestRule {
	out := make([]InterestRule, len(t.rules))
	copy(out, t.rules)
	return out
}
