package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/awesomegic/bankledger-backend/internal/adapter/repository/jsonfile"
	"github.com/awesomegic/bankledger-backend/internal/config"
	"github.com/awesomegic/bankledger-backend/internal/console"
	"github.com/awesomegic/bankledger-backend/internal/usecase/ledger"
	"github.com/awesomegic/bankledger-backend/internal/usecase/rates"
	"github.com/awesomegic/bankledger-backend/internal/usecase/statement"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	store, err := jsonfile.NewStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to open data directory %s: %v", cfg.DataDir, err)
	}

	session := console.NewConsole(
		rates.NewRateService(store),
		ledger.NewLedgerService(store),
		statement.NewStatementService(store, store),
		os.Stdin,
		os.Stdout,
	)

	if err := session.Run(context.Background()); err != nil {
		log.Fatalf("Session ended with error: %v", err)
	}
}
