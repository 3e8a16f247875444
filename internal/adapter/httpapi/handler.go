package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/awesomegic/bankledger-backend/internal/domain"
	"github.com/awesomegic/bankledger-backend/internal/usecase/ledger"
	"github.com/awesomegic/bankledger-backend/internal/usecase/rates"
)

// Wire DTOs. Dates travel as YYYYMMDD strings, months as YYYYMM, amounts and
// rates as decimal strings; parsing happens here so malformed input never
// reaches the use cases.

type defineRuleRequest struct {
	Date   string `json:"date"`
	RuleID string `json:"ruleId"`
	Rate   string `json:"rate"`
}

type ruleResponse struct {
	Date   string `json:"date"`
	RuleID string `json:"ruleId"`
	Rate   string `json:"rate"`
}

type recordTransactionRequest struct {
	Date   string `json:"date"`
	Type   string `json:"type"`
	Amount string `json:"amount"`
}

type transactionResponse struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Type   string `json:"type"`
	Amount string `json:"amount"`
}

type statementLineResponse struct {
	Date    string `json:"date"`
	ID      string `json:"id"`
	Type    string `json:"type"`
	Amount  string `json:"amount"`
	Balance string `json:"balance"`
}

// defineRule handles POST /v1/rules
func (s *Server) defineRule(w http.ResponseWriter, r *http.Request) {
	var req defineRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := domain.ParseDate(req.Date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	rate, err := domain.ParseRatePercent(req.Rate)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	rule, err := s.RateService.DefineRule(r.Context(), rates.DefineRuleInput{
		EffectiveDate: date,
		RuleID:        req.RuleID,
		RatePercent:   rate,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toRuleResponse(rule))
}

// listRules handles GET /v1/rules
func (s *Server) listRules(w http.ResponseWriter, r *http.Request) {
	rules, err := s.RateService.ListRules(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]ruleResponse, 0, len(rules))
	for _, rule := range rules {
		out = append(out, toRuleResponse(rule))
	}
	writeJSON(w, http.StatusOK, out)
}

// recordTransaction handles POST /v1/accounts/{accountID}/transactions
func (s *Server) recordTransaction(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")

	var req recordTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := domain.ParseDate(req.Date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	txType, err := domain.ParseTransactionType(req.Type)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	tx, err := s.LedgerService.RecordTransaction(r.Context(), ledger.RecordTransactionInput{
		AccountID: accountID,
		Date:      date,
		Type:      txType,
		Amount:    amount,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTransactionResponse(tx))
}

// listTransactions handles GET /v1/accounts/{accountID}/transactions
func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")

	txns, err := s.LedgerService.ListTransactions(r.Context(), accountID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]transactionResponse, 0, len(txns))
	for _, tx := range txns {
		out = append(out, toTransactionResponse(tx))
	}
	writeJSON(w, http.StatusOK, out)
}

// getStatement handles GET /v1/accounts/{accountID}/statements/{yearMonth}
func (s *Server) getStatement(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")

	month, err := domain.ParseYearMonth(chi.URLParam(r, "yearMonth"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	lines, err := s.StatementService.GenerateStatement(r.Context(), accountID, month)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]statementLineResponse, 0, len(lines))
	for _, line := range lines {
		out = append(out, statementLineResponse{
			Date:    line.Date.Format(domain.DateLayout),
			ID:      line.ID,
			Type:    string(line.Type),
			Amount:  line.Amount.StringFixed(2),
			Balance: line.Balance.StringFixed(2),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func toRuleResponse(rule domain.InterestRule) ruleResponse {
	return ruleResponse{
		Date:   rule.EffectiveDate.Format(domain.DateLayout),
		RuleID: rule.RuleID,
		Rate:   rule.RatePercent.StringFixed(2),
	}
}

func toTransactionResponse(tx domain.Transaction) transactionResponse {
	return transactionResponse{
		ID:     tx.ID,
		Date:   tx.Date.Format(domain.DateLayout),
		Type:   string(tx.Type),
		Amount: tx.Amount.StringFixed(2),
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeDomainError maps domain errors onto HTTP status codes. Every message
// carries the offending value and violated constraint from the error itself.
func writeDomainError(w http.ResponseWriter, err error) {
	var malformed *domain.MalformedInputError
	var unknownType *domain.UnknownTransactionTypeError
	var insufficient *domain.InsufficientFundsError
	var missingRate *domain.MissingRateError

	switch {
	case errors.As(err, &malformed), errors.As(err, &unknownType):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &insufficient):
		writeError(w, http.StatusConflict, err.Error())
	case errors.As(err, &missingRate):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
