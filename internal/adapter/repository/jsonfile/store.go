// Package jsonfile persists interest rules and account transactions as JSON
// documents under a data directory. It is the backend used by the console
// binary and by the server when no database is configured.
//
// Writes are atomic: the document is written to a .tmp file and renamed over
// the previous one, so a crash mid-write never corrupts existing data.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/awesomegic/bankledger-backend/internal/domain"
)

const (
	rulesFile        = "interest-rules.json"
	transactionsFile = "account-transactions.json"
)

// Store implements domain.RuleRepository and domain.TransactionRepository on
// top of two JSON files. A mutex guards each load-modify-save cycle so the
// store is safe under a concurrent HTTP host.
type Store struct {
	dir string
	mu  sync.Mutex
}

// NewStore creates a store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// ruleRecord is the on-disk shape of an interest rule
type ruleRecord struct {
	EffectiveDate string `json:"effectiveDate"` // YYYYMMDD
	RuleID        string `json:"ruleId"`
	RatePercent   string `json:"ratePercent"`
}

// transactionRecord is the on-disk shape of a transaction
type transactionRecord struct {
	ID        string `json:"id"`
	AccountID string `json:"accountId"`
	Date      string `json:"date"` // YYYYMMDD
	Type      string `json:"type"`
	Amount    string `json:"amount"`
}

// UpsertRule stores a rule, replacing any rule sharing its effective date.
// The whole rule document is rewritten; the file is the unit of persistence.
func (s *Store) UpsertRule(_ context.Context, rule domain.InterestRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []ruleRecord
	if err := s.load(rulesFile, &records); err != nil {
		return err
	}

	key := rule.EffectiveDate.Format(domain.DateLayout)
	kept := records[:0]
	for _, rec := range records {
		if rec.EffectiveDate != key {
			kept = append(kept, rec)
		}
	}

	kept = append(kept, ruleRecord{
		EffectiveDate: key,
		RuleID:        rule.RuleID,
		RatePercent:   rule.RatePercent.String(),
	})

	return s.save(rulesFile, kept)
}

// ListRules retrieves all stored rules in insertion order
func (s *Store) ListRules(_ context.Context) ([]domain.InterestRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []ruleRecord
	if err := s.load(rulesFile, &records); err != nil {
		return nil, err
	}

	rules := make([]domain.InterestRule, 0, len(records))
	for _, rec := range records {
		date, err := domain.ParseDate(rec.EffectiveDate)
		if err != nil {
			return nil, fmt.Errorf("corrupt rule record %q: %w", rec.EffectiveDate, err)
		}
		rate, err := decimal.NewFromString(rec.RatePercent)
		if err != nil {
			return nil, fmt.Errorf("corrupt rule rate %q: %w", rec.RatePercent, err)
		}
		rules = append(rules, domain.InterestRule{
			EffectiveDate: date,
			RuleID:        rec.RuleID,
			RatePercent:   rate,
		})
	}

	return rules, nil
}

// AppendTransaction stores a new transaction at the end of the document
func (s *Store) AppendTransaction(_ context.Context, tx domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []transactionRecord
	if err := s.load(transactionsFile, &records); err != nil {
		return err
	}

	records = append(records, transactionRecord{
		ID:        tx.ID,
		AccountID: tx.AccountID,
		Date:      tx.Date.Format(domain.DateLayout),
		Type:      string(tx.Type),
		Amount:    tx.Amount.String(),
	})

	return s.save(transactionsFile, records)
}

// ListTransactions retrieves an account's transactions in insertion order.
// The document holds every account; filtering happens on load.
func (s *Store) ListTransactions(_ context.Context, accountID string) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []transactionRecord
	if err := s.load(transactionsFile, &records); err != nil {
		return nil, err
	}

	txns := make([]domain.Transaction, 0)
	for _, rec := range records {
		if rec.AccountID != accountID {
			continue
		}
		date, err := domain.ParseDate(rec.Date)
		if err != nil {
			return nil, fmt.Errorf("corrupt transaction record %q: %w", rec.ID, err)
		}
		amount, err := decimal.NewFromString(rec.Amount)
		if err != nil {
			return nil, fmt.Errorf("corrupt transaction amount %q: %w", rec.Amount, err)
		}
		txns = append(txns, domain.Transaction{
			ID:        rec.ID,
			AccountID: rec.AccountID,
			Date:      date,
			Type:      domain.TransactionType(rec.Type),
			Amount:    amount,
		})
	}

	return txns, nil
}

// load decodes the named document into out. A missing file is an empty store.
func (s *Store) load(name string, out any) error {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

// save writes the document atomically: tmp file first, then rename over the
// previous version.
func (s *Store) save(name string, doc any) error {
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tmp, err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp, err)
	}

	return os.Rename(tmp, path)
}
