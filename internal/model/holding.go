package model

import "github.com/shopspring/decimal"

// HoldingRecord is the persisted position for one asset.
// AlertAbove is nil when no price alert is configured.
type HoldingRecord struct {
	Amount     decimal.Decimal  `json:"amount"`
	BuyPrice   decimal.Decimal  `json:"buy_price"`
	AlertAbove *decimal.Decimal `json:"alert_above,omitempty"`
}

// Holding is a HoldingRecord keyed by its lowercase asset identifier.
type Holding struct {
	ID string `json:"id"`
	HoldingRecord
}

// Holdings is the ordered holdings mapping. The slice order is the stored order
// and is preserved through valuation and rendering.
type Holdings []Holding

// IDs returns the asset identifiers in stored order.
func (h Holdings) IDs() []string {
	ids := make([]string, len(h))
	for i, holding := range h {
		ids[i] = holding.ID
	}
	return ids
}

// Find returns the position of id, or -1.
func (h Holdings) Find(id string) int {
	for i, holding := range h {
		if holding.ID == id {
			return i
		}
	}
	return -1
}
