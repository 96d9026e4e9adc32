// Package valuation combines holdings and quotes into per-asset rows, portfolio
// totals and price alerts.
//
// Compute is a pure function: it reads its inputs, never mutates them, and the
// same inputs always produce the same output. Arithmetic is exact decimal
// arithmetic; rounding belongs to the presentation layer.
package valuation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/apperrors"
	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/model"
)

// MissingQuotePolicy decides what happens to a holding without a quote.
type MissingQuotePolicy int

const (
	// FailOnMissing aborts the computation with a *apperrors.MissingQuoteError.
	FailOnMissing MissingQuotePolicy = iota
	// SkipMissing leaves the holding out of rows and totals and records it in Result.Skipped.
	SkipMissing
)

// Options configures Compute.
type Options struct {
	MissingQuotes MissingQuotePolicy
}

// Result is the output of Compute. Rows and Alerts follow the holdings order.
type Result struct {
	Rows    []model.ValuationRow
	Summary model.PortfolioSummary
	Alerts  []model.AlertEvent
	Skipped []string
}

// Compute values every holding in one pass, in stored order.
//
// For each holding:
//
//	value_primary   = price_primary * amount
//	value_secondary = price_secondary * amount
//	gain_primary    = value_primary - buy_price * amount
//
// Totals are summed in the same order. An alert is raised when alert_above is set
// and price_primary > alert_above; a price equal to the threshold does not alert.
func Compute(holdings model.Holdings, quotes model.QuoteSet, opts Options) (Result, error) {
	result := Result{
		Rows:   make([]model.ValuationRow, 0, len(holdings)),
		Alerts: []model.AlertEvent{},
		Summary: model.PortfolioSummary{
			TotalValuePrimary:   decimal.Zero,
			TotalValueSecondary: decimal.Zero,
		},
	}

	for _, h := range holdings {
		quote, ok := quotes[h.ID]
		if !ok {
			if opts.MissingQuotes == SkipMissing {
				result.Skipped = append(result.Skipped, h.ID)
				continue
			}
			return Result{}, &apperrors.MissingQuoteError{ID: h.ID}
		}

		row := ComputeRow(h, quote)
		result.Rows = append(result.Rows, row)

		result.Summary.TotalValuePrimary = result.Summary.TotalValuePrimary.Add(row.ValuePrimary)
		result.Summary.TotalValueSecondary = result.Summary.TotalValueSecondary.Add(row.ValueSecondary)

		if alert, ok := CheckAlert(h, quote); ok {
			result.Alerts = append(result.Alerts, alert)
		}
	}

	return result, nil
}

// ComputeRow derives the valuation row of a single holding.
func ComputeRow(h model.Holding, q model.Quote) model.ValuationRow {
	valuePrimary := q.Primary.Mul(h.Amount)
	return model.ValuationRow{
		ID:                    h.ID,
		TokenLabel:            TokenLabel(h.ID),
		Amount:                h.Amount,
		BuyPrice:              h.BuyPrice,
		CurrentPricePrimary:   q.Primary,
		CurrentPriceSecondary: q.Secondary,
		ValuePrimary:          valuePrimary,
		ValueSecondary:        q.Secondary.Mul(h.Amount),
		GainPrimary:           valuePrimary.Sub(h.BuyPrice.Mul(h.Amount)),
	}
}

// CheckAlert reports the alert event for h, if its threshold is strictly exceeded.
func CheckAlert(h model.Holding, q model.Quote) (model.AlertEvent, bool) {
	if h.AlertAbove == nil || !q.Primary.GreaterThan(*h.AlertAbove) {
		return model.AlertEvent{}, false
	}
	return model.AlertEvent{
		ID:           h.ID,
		Threshold:    *h.AlertAbove,
		CurrentPrice: q.Primary,
	}, true
}

// TokenLabel capitalizes the first letter of an identifier and lowercases the rest.
func TokenLabel(id string) string {
	if id == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(id)
	return string(unicode.ToUpper(r)) + strings.ToLower(id[size:])
}
