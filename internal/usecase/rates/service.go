package rates

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/awesomegic/bankledger-backend/internal/domain"
)

// DefineRuleInput represents the input for defining an interest rule
type DefineRuleInput struct {
	EffectiveDate time.Time
	RuleID        string
	RatePercent   decimal.Decimal
}

// RateService maintains the interest rule table
type RateService struct {
	RuleRepo domain.RuleRepository
}

// NewRateService creates a new RateService instance
func NewRateService(ruleRepo domain.RuleRepository) *RateService {
	return &RateService{RuleRepo: ruleRepo}
}

// DefineRule validates and stores an interest rule. A rule submitted for an
// effective date that already has one fully replaces it.
// Logic:
//  1. Build the rule and validate it (rate bounds, non-empty id)
//  2. Upsert keyed by effective date
func (s *RateService) DefineRule(ctx context.Context, input DefineRuleInput) (domain.InterestRule, error) {
	rule := domain.InterestRule{
		EffectiveDate: domain.DayOf(input.EffectiveDate),
		RuleID:        input.RuleID,
		RatePercent:   input.RatePercent,
	}

	if err := rule.Validate(); err != nil {
		return domain.InterestRule{}, err
	}

	if err := s.RuleRepo.UpsertRule(ctx, rule); err != nil {
		return domain.InterestRule{}, err
	}

	return rule, nil
}

// ListRules returns all rules in ascending effective-date order.
func (s *RateService) ListRules(ctx context.Context) ([]domain.InterestRule, error) {
	rules, err := s.RuleRepo.ListRules(ctx)
	if err != nil {
		return nil, err
	}

	return domain.NewRateTable(rules).Rules(), nil
}
