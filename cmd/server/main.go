package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/api"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/coingecko"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/config"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/logger"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/model"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/repository"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/scheduler"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/service"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/valuation"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// The logger is configured from cfg, so fall back to the defaults here
		log := logger.New(logger.Config{})
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	// Open holdings store
	store, db, err := repository.OpenStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open holdings store")
	}
	if db != nil {
		defer db.Close()
		log.Info().Str("path", cfg.Database.Path).Msg("Connected to database")
	} else {
		log.Info().Str("path", cfg.Holdings.Path).Msg("Using holdings file")
	}

	currencies := model.Currencies{
		Primary:   cfg.Valuation.PrimaryCurrency,
		Secondary: cfg.Valuation.SecondaryCurrency,
	}

	// Create clients
	quoteClient := coingecko.NewFinanceClient(coingecko.Options{
		BaseURL:    cfg.Quotes.BaseURL,
		APIKey:     cfg.Quotes.APIKey,
		Timeout:    cfg.Quotes.Timeout,
		Currencies: currencies,
	})

	// Create services
	valuationOptions := valuation.Options{MissingQuotes: valuation.FailOnMissing}
	if cfg.Valuation.MissingQuotePolicy == config.MissingQuoteSkip {
		valuationOptions.MissingQuotes = valuation.SkipMissing
	}
	portfolioService := service.NewPortfolioService(
		store,
		quoteClient,
		currencies,
		service.WithValuationOptions(valuationOptions),
		service.WithLogger(log),
	)
	holdingsService := service.NewHoldingsService(store, log)
	systemService := service.NewSystemService(db, store, cfg.Holdings.Backend, currencies)

	// Background alert watch
	var sched *scheduler.Scheduler
	if cfg.Alerts.Schedule != "" {
		sched = scheduler.New(log)
		job := scheduler.NewAlertWatchJob(scheduler.AlertWatchConfig{
			Log:       log,
			Refresher: portfolioService,
			Timeout:   2 * cfg.Quotes.Timeout,
		})
		if err := sched.AddJob(cfg.Alerts.Schedule, job); err != nil {
			log.Fatal().Err(err).Str("schedule", cfg.Alerts.Schedule).Msg("Invalid ALERT_SCHEDULE")
		}
		sched.Start()
	}

	// Create router
	router := api.NewRouter(systemService, portfolioService, holdingsService, cfg, log)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second + cfg.Quotes.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	if sched != nil {
		sched.Stop()
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return
	}

	log.Info().Msg("Server exited")
}
