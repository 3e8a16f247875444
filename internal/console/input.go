package console

import (
	"fmt"
	"strings"
	"time"

	"github.com/awesomegic/bankledger-backend/internal/domain"
	"github.com/awesomegic/bankledger-backend/internal/usecase/ledger"
	"github.com/awesomegic/bankledger-backend/internal/usecase/rates"
)

// splitTokens splits a command line on whitespace and enforces the exact
// token count the command expects.
func splitTokens(line string, expected int) ([]string, error) {
	tokens := strings.Fields(line)
	if len(tokens) != expected {
		return nil, &domain.MalformedInputError{
			Value:      line,
			Constraint: fmt.Sprintf("expected %d tokens, got %d", expected, len(tokens)),
		}
	}
	return tokens, nil
}

// parseTransactionInput parses "<Date> <Account> <Type> <Amount>"
func parseTransactionInput(line string) (ledger.RecordTransactionInput, error) {
	tokens, err := splitTokens(line, 4)
	if err != nil {
		return ledger.RecordTransactionInput{}, err
	}

	date, err := domain.ParseDate(tokens[0])
	if err != nil {
		return ledger.RecordTransactionInput{}, err
	}
	txType, err := domain.ParseTransactionType(tokens[2])
	if err != nil {
		return ledger.RecordTransactionInput{}, err
	}
	amount, err := domain.ParseAmount(tokens[3])
	if err != nil {
		return ledger.RecordTransactionInput{}, err
	}

	return ledger.RecordTransactionInput{
		AccountID: tokens[1],
		Date:      date,
		Type:      txType,
		Amount:    amount,
	}, nil
}

// parseRuleInput parses "<Date> <RuleId> <Rate in %>"
func parseRuleInput(line string) (rates.DefineRuleInput, error) {
	tokens, err := splitTokens(line, 3)
	if err != nil {
		return rates.DefineRuleInput{}, err
	}

	date, err := domain.ParseDate(tokens[0])
	if err != nil {
		return rates.DefineRuleInput{}, err
	}
	rate, err := domain.ParseRatePercent(tokens[2])
	if err != nil {
		return rates.DefineRuleInput{}, err
	}

	return rates.DefineRuleInput{
		EffectiveDate: date,
		RuleID:        tokens[1],
		RatePercent:   rate,
	}, nil
}

// parseStatementInput parses "<Account> <Year><Month>"
func parseStatementInput(line string) (string, time.Time, error) {
	tokens, err := splitTokens(line, 2)
	if err != nil {
		return "", time.Time{}, err
	}

	month, err := domain.ParseYearMonth(tokens[1])
	if err != nil {
		return "", time.Time{}, err
	}
	return tokens[0], month, nil
}
