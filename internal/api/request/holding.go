package request

import "github.com/shopspring/decimal"

// UpsertHoldingRequest is the body of PUT /api/holdings/{id}.
// Pointer fields distinguish absent values from zero.
type UpsertHoldingRequest struct {
	Amount     *decimal.Decimal `json:"amount"`
	BuyPrice   *decimal.Decimal `json:"buy_price"`
	AlertAbove *decimal.Decimal `json:"alert_above"`
}
