package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ValuationRow holds the derived metrics of one holding.
type ValuationRow struct {
	ID                    string          `json:"id"`
	TokenLabel            string          `json:"token"`
	Amount                decimal.Decimal `json:"amount"`
	BuyPrice              decimal.Decimal `json:"buyPrice"`
	CurrentPricePrimary   decimal.Decimal `json:"currentPricePrimary"`
	CurrentPriceSecondary decimal.Decimal `json:"currentPriceSecondary"`
	ValuePrimary          decimal.Decimal `json:"valuePrimary"`
	ValueSecondary        decimal.Decimal `json:"valueSecondary"`
	GainPrimary           decimal.Decimal `json:"gainPrimary"`
}

// PortfolioSummary holds the totals over all valuation rows.
type PortfolioSummary struct {
	TotalValuePrimary   decimal.Decimal `json:"totalValuePrimary"`
	TotalValueSecondary decimal.Decimal `json:"totalValueSecondary"`
}

// AlertEvent is emitted when the current primary price is strictly above the
// configured threshold. Alert events are recomputed on every refresh.
type AlertEvent struct {
	ID           string          `json:"id"`
	Threshold    decimal.Decimal `json:"threshold"`
	CurrentPrice decimal.Decimal `json:"currentPrice"`
}

// Valuation is the outcome of one refresh cycle.
type Valuation struct {
	RefreshID   string           `json:"refreshId"`
	Currencies  Currencies       `json:"currencies"`
	Rows        []ValuationRow   `json:"rows"`
	Summary     PortfolioSummary `json:"summary"`
	Alerts      []AlertEvent     `json:"alerts"`
	Skipped     []string         `json:"skipped,omitempty"`
	RefreshedAt time.Time        `json:"refreshedAt"`
}
