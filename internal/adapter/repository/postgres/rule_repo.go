package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/awesomegic/bankledger-backend/internal/domain"
)

// ruleRepository implements domain.RuleRepository
type ruleRepository struct {
	db *DB
}

// NewRuleRepository creates a new interest rule repository
func NewRuleRepository(db *DB) domain.RuleRepository {
	return &ruleRepository{db: db}
}

// UpsertRule stores a rule, replacing any rule sharing its effective date.
// The effective date is the natural key: a resubmission for the same date is
// a full replacement, never a second row.
func (r *ruleRepository) UpsertRule(ctx context.Context, rule domain.InterestRule) error {
	query := `
		INSERT INTO interest_rules (effective_date, rule_id, rate_percent)
		VALUES ($1, $2, $3)
		ON CONFLICT (effective_date)
		DO UPDATE SET rule_id = EXCLUDED.rule_id, rate_percent = EXCLUDED.rate_percent
	`

	_, err := r.db.ExecContext(ctx, query,
		rule.EffectiveDate,
		rule.RuleID,
		rule.RatePercent.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert interest rule: %w", err)
	}

	return nil
}

// ListRules retrieves all stored rules in ascending effective-date order
func (r *ruleRepository) ListRules(ctx context.Context) ([]domain.InterestRule, error) {
	query := `
		SELECT effective_date, rule_id, rate_percent
		FROM interest_rules
		ORDER BY effective_date
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list interest rules: %w", err)
	}
	defer rows.Close()

	rules := make([]domain.InterestRule, 0)
	for rows.Next() {
		var rule domain.InterestRule
		var effectiveDate time.Time
		var rateStr string

		if err := rows.Scan(&effectiveDate, &rule.RuleID, &rateStr); err != nil {
			return nil, fmt.Errorf("failed to scan interest rule: %w", err)
		}

		rule.EffectiveDate = domain.DayOf(effectiveDate.UTC())

		rate, err := decimal.NewFromString(rateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rate_percent: %w", err)
		}
		rule.RatePercent = rate

		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate interest rules: %w", err)
	}

	return rules, nil
}
