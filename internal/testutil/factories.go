package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/model"
)

// HoldingBuilder provides a fluent interface for creating test holdings.
//
// Example usage:
//
//	holding := testutil.NewHolding("bitcoin").
//	    WithAmount("2").
//	    WithBuyPrice("20000").
//	    WithAlertAbove("24000").
//	    Build()
type HoldingBuilder struct {
	ID         string
	Amount     decimal.Decimal
	BuyPrice   decimal.Decimal
	AlertAbove *decimal.Decimal
}

// NewHolding creates a HoldingBuilder holding one unit bought at 100.
func NewHolding(id string) *HoldingBuilder {
	return &HoldingBuilder{
		ID:       id,
		Amount:   decimal.NewFromInt(1),
		BuyPrice: decimal.NewFromInt(100),
	}
}

// WithAmount sets the amount held.
func (b *HoldingBuilder) WithAmount(amount string) *HoldingBuilder {
	b.Amount = decimal.RequireFromString(amount)
	return b
}

// WithBuyPrice sets the buy price.
func (b *HoldingBuilder) WithBuyPrice(price string) *HoldingBuilder {
	b.BuyPrice = decimal.RequireFromString(price)
	return b
}

// WithAlertAbove sets the alert threshold.
func (b *HoldingBuilder) WithAlertAbove(threshold string) *HoldingBuilder {
	d := decimal.RequireFromString(threshold)
	b.AlertAbove = &d
	return b
}

// Build returns the holding.
func (b *HoldingBuilder) Build() model.Holding {
	return model.Holding{
		ID: b.ID,
		HoldingRecord: model.HoldingRecord{
			Amount:     b.Amount,
			BuyPrice:   b.BuyPrice,
			AlertAbove: b.AlertAbove,
		},
	}
}

// SampleHoldings returns the two-holding portfolio used across tests:
// bitcoin (2 @ 20000, alert above 24000) and ethereum (10 @ 1500, no alert).
func SampleHoldings() model.Holdings {
	return model.Holdings{
		NewHolding("bitcoin").WithAmount("2").WithBuyPrice("20000").WithAlertAbove("24000").Build(),
		NewHolding("ethereum").WithAmount("10").WithBuyPrice("1500").Build(),
	}
}

// SampleHoldingsJSON is SampleHoldings in the holdings file format.
const SampleHoldingsJSON = `{
    "bitcoin": {"amount": 2, "buy_price": 20000, "alert_above": 24000},
    "ethereum": {"amount": 10, "buy_price": 1500}
}`

// WriteHoldingsFile writes content to portfolio.json in a temporary directory
// and returns its path.
func WriteHoldingsFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "portfolio.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write holdings file: %v", err)
	}
	return path
}

// Dec parses a decimal literal, failing loudly on typos in test tables.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
