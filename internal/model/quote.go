package model

import "github.com/shopspring/decimal"

// Quote holds the unit price of an asset in the primary and secondary currencies.
type Quote struct {
	Primary   decimal.Decimal `json:"primary"`
	Secondary decimal.Decimal `json:"secondary"`
}

// QuoteSet maps asset identifiers to their current quote.
type QuoteSet map[string]Quote

// Currencies names the two fixed quote currencies, as lowercase codes (e.g. "usd", "inr").
type Currencies struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}
