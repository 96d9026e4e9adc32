package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/coingecko"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/config"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/logger"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/model"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/repository"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/service"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/valuation"
)

var commands = []subcommands.Command{
	&showCmd{},
	&setCmd{},
	&removeCmd{},
	&importCmd{},
	&encryptKeyCmd{},
}

// env holds what the commands share: configuration, logger and the holdings store.
type env struct {
	cfg   *config.Config
	log   zerolog.Logger
	store repository.HoldingsStore
	db    *sql.DB
}

// openEnv loads configuration and opens the configured holdings store.
// Logs go to stderr so they never mix with rendered output.
func openEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: true, Out: os.Stderr})

	store, db, err := repository.OpenStore(cfg)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, store: store, db: db}, nil
}

func (e *env) Close() {
	if e.db != nil {
		e.db.Close()
	}
}

func (e *env) currencies() model.Currencies {
	return model.Currencies{
		Primary:   e.cfg.Valuation.PrimaryCurrency,
		Secondary: e.cfg.Valuation.SecondaryCurrency,
	}
}

func (e *env) portfolioService() *service.PortfolioService {
	quotes := coingecko.NewFinanceClient(coingecko.Options{
		BaseURL:    e.cfg.Quotes.BaseURL,
		APIKey:     e.cfg.Quotes.APIKey,
		Timeout:    e.cfg.Quotes.Timeout,
		Currencies: e.currencies(),
	})
	opts := valuation.Options{MissingQuotes: valuation.FailOnMissing}
	if e.cfg.Valuation.MissingQuotePolicy == config.MissingQuoteSkip {
		opts.MissingQuotes = valuation.SkipMissing
	}
	return service.NewPortfolioService(
		e.store,
		quotes,
		e.currencies(),
		service.WithValuationOptions(opts),
		service.WithLogger(e.log),
	)
}

func (e *env) holdingsService() *service.HoldingsService {
	return service.NewHoldingsService(e.store, e.log)
}

func fail(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitFailure
}
