package testutil

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/coingecko"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/model"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/repository"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/service"
)

// TestCurrencies are the default primary and secondary currencies.
var TestCurrencies = model.Currencies{Primary: "usd", Secondary: "inr"}

// FixedTime is the clock used by test services.
var FixedTime = time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

// NewTestPortfolioService creates a PortfolioService with a fixed clock and a silent logger.
func NewTestPortfolioService(
	t *testing.T,
	store repository.HoldingsStore,
	quotes coingecko.Client,
	opts ...service.PortfolioServiceOption,
) *service.PortfolioService {
	t.Helper()

	opts = append([]service.PortfolioServiceOption{
		service.WithClock(func() time.Time { return FixedTime }),
		service.WithLogger(zerolog.Nop()),
	}, opts...)
	return service.NewPortfolioService(store, quotes, TestCurrencies, opts...)
}

// NewTestHoldingsService creates a HoldingsService with a silent logger.
func NewTestHoldingsService(t *testing.T, store repository.HoldingsStore) *service.HoldingsService {
	t.Helper()
	return service.NewHoldingsService(store, zerolog.Nop())
}

// NewTestJSONStore writes content to a temporary holdings file and returns a store on it.
func NewTestJSONStore(t *testing.T, content string) *repository.JSONHoldingsRepository {
	t.Helper()
	return repository.NewJSONHoldingsRepository(WriteHoldingsFile(t, content))
}
