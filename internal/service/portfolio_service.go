package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/coingecko"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/model"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/repository"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/valuation"
)

// PortfolioService runs refresh cycles: load holdings, fetch quotes, compute the
// valuation. It keeps no state between refreshes.
type PortfolioService struct {
	store      repository.HoldingsStore
	quotes     coingecko.Client
	currencies model.Currencies
	options    valuation.Options
	now        func() time.Time
	log        zerolog.Logger
}

// PortfolioServiceOption customizes a PortfolioService.
type PortfolioServiceOption func(*PortfolioService)

// WithClock replaces time.Now, used to stamp RefreshedAt.
func WithClock(now func() time.Time) PortfolioServiceOption {
	return func(s *PortfolioService) { s.now = now }
}

// WithValuationOptions sets the valuation options, e.g. the missing quote policy.
func WithValuationOptions(opts valuation.Options) PortfolioServiceOption {
	return func(s *PortfolioService) { s.options = opts }
}

// WithLogger sets the service logger.
func WithLogger(log zerolog.Logger) PortfolioServiceOption {
	return func(s *PortfolioService) { s.log = log }
}

// NewPortfolioService creates a new PortfolioService with the provided dependencies.
func NewPortfolioService(
	store repository.HoldingsStore,
	quotes coingecko.Client,
	currencies model.Currencies,
	opts ...PortfolioServiceOption,
) *PortfolioService {
	s := &PortfolioService{
		store:      store,
		quotes:     quotes,
		currencies: currencies,
		now:        time.Now,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With().Str("component", "portfolio").Logger()
	return s
}

// Currencies returns the primary and secondary quote currencies.
func (s *PortfolioService) Currencies() model.Currencies {
	return s.currencies
}

// Refresh performs one full refresh cycle. Any failure aborts the cycle and is
// returned unchanged; no partial valuation is produced.
func (s *PortfolioService) Refresh(ctx context.Context) (model.Valuation, error) {
	refreshID := uuid.New().String()
	log := s.log.With().Str("refresh_id", refreshID).Logger()
	start := s.now()

	holdings, err := s.store.Load(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load holdings")
		return model.Valuation{}, err
	}

	quotes, err := s.quotes.FetchPrices(ctx, holdings.IDs())
	if err != nil {
		log.Error().Err(err).Int("holdings", len(holdings)).Msg("Failed to fetch quotes")
		return model.Valuation{}, err
	}

	return s.value(log, refreshID, holdings, quotes, start)
}

// Value computes a valuation from holdings and quotes supplied by the caller.
func (s *PortfolioService) Value(holdings model.Holdings, quotes model.QuoteSet) (model.Valuation, error) {
	refreshID := uuid.New().String()
	log := s.log.With().Str("refresh_id", refreshID).Logger()
	return s.value(log, refreshID, holdings, quotes, s.now())
}

func (s *PortfolioService) value(
	log zerolog.Logger,
	refreshID string,
	holdings model.Holdings,
	quotes model.QuoteSet,
	refreshedAt time.Time,
) (model.Valuation, error) {
	result, err := valuation.Compute(holdings, quotes, s.options)
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute valuation")
		return model.Valuation{}, err
	}

	for _, id := range result.Skipped {
		log.Warn().Str("asset", id).Msg("No quote returned, holding skipped")
	}
	for _, alert := range result.Alerts {
		log.Warn().
			Str("asset", alert.ID).
			Str("threshold", alert.Threshold.String()).
			Str("price", alert.CurrentPrice.String()).
			Msg("Price alert triggered")
	}

	log.Info().
		Int("rows", len(result.Rows)).
		Int("alerts", len(result.Alerts)).
		Str("total_"+s.currencies.Primary, result.Summary.TotalValuePrimary.String()).
		Msg("Portfolio refreshed")

	return model.Valuation{
		RefreshID:   refreshID,
		Currencies:  s.currencies,
		Rows:        result.Rows,
		Summary:     result.Summary,
		Alerts:      result.Alerts,
		Skipped:     result.Skipped,
		RefreshedAt: refreshedAt,
	}, nil
}
