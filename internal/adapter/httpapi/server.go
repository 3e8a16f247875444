package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/awesomegic/bankledger-backend/internal/usecase/ledger"
	"github.com/awesomegic/bankledger-backend/internal/usecase/rates"
	"github.com/awesomegic/bankledger-backend/internal/usecase/statement"
)

// Server exposes the ledger use cases over HTTP/JSON
type Server struct {
	RateService      *rates.RateService
	LedgerService    *ledger.LedgerService
	StatementService *statement.StatementService

	logger *zap.Logger
	token  string
}

// NewServer creates a new HTTP server instance.
// token guards every route; requests must carry it as a bearer token.
func NewServer(
	rateService *rates.RateService,
	ledgerService *ledger.LedgerService,
	statementService *statement.StatementService,
	logger *zap.Logger,
	token string,
) *Server {
	return &Server{
		RateService:      rateService,
		LedgerService:    ledgerService,
		StatementService: statementService,
		logger:           logger,
		token:            token,
	}
}

// Router builds the chi router with middleware and all API routes
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(requestID)
	r.Use(requestLogger(s.logger))
	r.Use(auth(s.token))

	r.Route("/v1", func(v1 chi.Router) {
		v1.Post("/rules", s.defineRule)
		v1.Get("/rules", s.listRules)

		v1.Route("/accounts/{accountID}", func(acc chi.Router) {
			acc.Post("/transactions", s.recordTransaction)
			acc.Get("/transactions", s.listTransactions)
			acc.Get("/statements/{yearMonth}", s.getStatement)
		})
	})

	return r
}
