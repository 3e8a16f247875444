package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/awesomegic/bankledger-backend/internal/adapter/httpapi"
	"github.com/awesomegic/bankledger-backend/internal/adapter/repository/jsonfile"
	"github.com/awesomegic/bankledger-backend/internal/adapter/repository/postgres"
	"github.com/awesomegic/bankledger-backend/internal/config"
	"github.com/awesomegic/bankledger-backend/internal/domain"
	"github.com/awesomegic/bankledger-backend/internal/usecase/ledger"
	"github.com/awesomegic/bankledger-backend/internal/usecase/rates"
	"github.com/awesomegic/bankledger-backend/internal/usecase/statement"
)

func main() {
	// 1. Load environment and configuration
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	// 2. Initialize Repositories. Postgres when DATABASE_URL is set,
	// otherwise the file-backed store under DATA_DIR.
	var ruleRepo domain.RuleRepository
	var transactionRepo domain.TransactionRepository

	if cfg.DatabaseURL != "" {
		db, err := postgres.NewDB(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		ruleRepo = postgres.NewRuleRepository(db)
		transactionRepo = postgres.NewTransactionRepository(db)
		logger.Info("using postgres store")
	} else {
		store, err := jsonfile.NewStore(cfg.DataDir)
		if err != nil {
			logger.Fatal("failed to open data directory", zap.Error(err), zap.String("dir", cfg.DataDir))
		}

		ruleRepo = store
		transactionRepo = store
		logger.Info("using file store", zap.String("dir", cfg.DataDir))
	}

	// 3. Initialize Services (Use Cases)
	rateService := rates.NewRateService(ruleRepo)
	ledgerService := ledger.NewLedgerService(transactionRepo)
	statementService := statement.NewStatementService(ruleRepo, transactionRepo)

	// 4. Start HTTP Server
	apiServer := httpapi.NewServer(rateService, ledgerService, statementService, logger, cfg.APIToken)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: apiServer.Router(),
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful shutdown
	waitForShutdown(httpServer, logger, cfg)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(httpServer *http.Server, logger *zap.Logger, cfg *config.Config) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
	logger.Info("http server stopped")
}
