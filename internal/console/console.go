// Package console implements the interactive terminal front end. It drives
// the same use cases as the HTTP API, reading commands from a menu loop and
// rendering results as fixed-width tables.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/awesomegic/bankledger-backend/internal/domain"
	"github.com/awesomegic/bankledger-backend/internal/usecase/ledger"
	"github.com/awesomegic/bankledger-backend/internal/usecase/rates"
	"github.com/awesomegic/bankledger-backend/internal/usecase/statement"
)

// Console runs the interactive menu session
type Console struct {
	RateService      *rates.RateService
	LedgerService    *ledger.LedgerService
	StatementService *statement.StatementService

	in  *bufio.Scanner
	out io.Writer
}

// NewConsole creates a session reading commands from in and writing to out
func NewConsole(
	rateService *rates.RateService,
	ledgerService *ledger.LedgerService,
	statementService *statement.StatementService,
	in io.Reader,
	out io.Writer,
) *Console {
	return &Console{
		RateService:      rateService,
		LedgerService:    ledgerService,
		StatementService: statementService,
		in:               bufio.NewScanner(in),
		out:              out,
	}
}

// Run loops over the main menu until the user quits or input ends.
// Errors from a single action are printed and the session continues.
func (c *Console) Run(ctx context.Context) error {
	showWelcome := true

	for {
		c.printMenu(showWelcome)
		showWelcome = false

		line, ok := c.readLine()
		if !ok {
			return nil
		}

		switch strings.ToUpper(strings.TrimSpace(line)) {
		case "T":
			c.inputTransaction(ctx)
		case "I":
			c.defineInterestRule(ctx)
		case "P":
			c.printStatement(ctx)
		case "Q":
			fmt.Fprintln(c.out, "Thank you for banking with AwesomeGIC Bank.")
			fmt.Fprintln(c.out, "Have a nice day!")
			return nil
		}
	}
}

func (c *Console) printMenu(showWelcome bool) {
	if showWelcome {
		fmt.Fprintln(c.out, "Welcome to AwesomeGIC Bank! What would you like to do?")
	} else {
		fmt.Fprintln(c.out, "Is there anything else you'd like to do?")
	}
	fmt.Fprintln(c.out, "[T] Input transactions")
	fmt.Fprintln(c.out, "[I] Define interest rules")
	fmt.Fprintln(c.out, "[P] Print statement")
	fmt.Fprintln(c.out, "[Q] Quit")
	fmt.Fprint(c.out, "> ")
}

func (c *Console) inputTransaction(ctx context.Context) {
	fmt.Fprintln(c.out, "Please enter transaction details in <Date> <Account> <Type> <Amount> format")
	fmt.Fprintln(c.out, "(or enter blank to go back to main menu):")
	fmt.Fprint(c.out, "> ")

	line, ok := c.readLine()
	if !ok || strings.TrimSpace(line) == "" {
		return
	}

	input, err := parseTransactionInput(line)
	if err != nil {
		fmt.Fprintln(c.out, err.Error())
		return
	}

	if _, err := c.LedgerService.RecordTransaction(ctx, input); err != nil {
		fmt.Fprintln(c.out, err.Error())
		return
	}

	txns, err := c.LedgerService.ListTransactions(ctx, input.AccountID)
	if err != nil {
		fmt.Fprintln(c.out, err.Error())
		return
	}
	c.renderTransactions(input.AccountID, txns)
}

func (c *Console) defineInterestRule(ctx context.Context) {
	fmt.Fprintln(c.out, "Please enter interest rules details in <Date> <RuleId> <Rate in %> format")
	fmt.Fprintln(c.out, "(or enter blank to go back to main menu):")
	fmt.Fprint(c.out, "> ")

	line, ok := c.readLine()
	if !ok || strings.TrimSpace(line) == "" {
		return
	}

	input, err := parseRuleInput(line)
	if err != nil {
		fmt.Fprintln(c.out, err.Error())
		return
	}

	if _, err := c.RateService.DefineRule(ctx, input); err != nil {
		fmt.Fprintln(c.out, err.Error())
		return
	}

	rules, err := c.RateService.ListRules(ctx)
	if err != nil {
		fmt.Fprintln(c.out, err.Error())
		return
	}
	c.renderRules(rules)
}

func (c *Console) printStatement(ctx context.Context) {
	fmt.Fprintln(c.out, "Please enter account and month to generate the statement <Account> <Year><Month>")
	fmt.Fprintln(c.out, "(or enter blank to go back to main menu):")
	fmt.Fprint(c.out, "> ")

	line, ok := c.readLine()
	if !ok || strings.TrimSpace(line) == "" {
		return
	}

	accountID, month, err := parseStatementInput(line)
	if err != nil {
		fmt.Fprintln(c.out, err.Error())
		return
	}

	lines, err := c.StatementService.GenerateStatement(ctx, accountID, month)
	if err != nil {
		fmt.Fprintln(c.out, err.Error())
		return
	}
	c.renderStatement(accountID, lines)
}

func (c *Console) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return c.in.Text(), true
}

func (c *Console) renderRules(rules []domain.InterestRule) {
	fmt.Fprintln(c.out, "Interest rules:")
	fmt.Fprintf(c.out, "| %-8s | %-8s | %8s |\n", "Date", "RuleId", "Rate (%)")
	for _, rule := range rules {
		fmt.Fprintf(c.out, "| %-8s | %-8s | %8s |\n",
			rule.EffectiveDate.Format(domain.DateLayout), rule.RuleID, rule.RatePercent.StringFixed(2))
	}
}

func (c *Console) renderTransactions(accountID string, txns []domain.Transaction) {
	fmt.Fprintf(c.out, "Account: %s\n", accountID)
	fmt.Fprintf(c.out, "| %-8s | %-12s | %-4s | %8s |\n", "Date", "Txn Id", "Type", "Amount")
	for _, tx := range txns {
		fmt.Fprintf(c.out, "| %-8s | %-12s | %-4s | %8s |\n",
			tx.Date.Format(domain.DateLayout), tx.ID, string(tx.Type), tx.Amount.StringFixed(2))
	}
}

func (c *Console) renderStatement(accountID string, lines []domain.StatementLine) {
	fmt.Fprintf(c.out, "Account: %s\n", accountID)
	fmt.Fprintf(c.out, "| %-8s | %-12s | %-4s | %8s | %8s |\n", "Date", "Txn Id", "Type", "Amount", "Balance")
	for _, line := range lines {
		fmt.Fprintf(c.out, "| %-8s | %-12s | %-4s | %8s | %8s |\n",
			line.Date.Format(domain.DateLayout), line.ID, string(line.Type),
			line.Amount.StringFixed(2), line.Balance.StringFixed(2))
	}
}
